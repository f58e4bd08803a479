package handler

import (
	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// --- Service results to HTTP responses ---

func toSummaryResponse(s ports.UserSummary) userSummaryResponse {
	return userSummaryResponse{
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
	}
}

func toSendResponse(m *domain.Message) sendMessageResponse {
	return sendMessageResponse{
		ID:           m.ID,
		FromUsername: m.FromUsername,
		ToUsername:   m.ToUsername,
		Body:         m.Body,
		SentAt:       m.SentAt.UTC(),
		ReadAt:       m.ReadAt,
	}
}

func toDetailResponse(d *ports.MessageDetail) messageDetailResponse {
	return messageDetailResponse{
		ID:     d.ID,
		Body:   d.Body,
		SentAt: d.SentAt.UTC(),
		ReadAt: d.ReadAt,
		From:   toSummaryResponse(d.From),
		To:     toSummaryResponse(d.To),
	}
}

func toUserMessagesResponse(items []ports.UserMessage) []userMessageResponse {
	out := make([]userMessageResponse, len(items))
	for i, m := range items {
		out[i] = userMessageResponse{
			ID:          m.ID,
			Body:        m.Body,
			SentAt:      m.SentAt.UTC(),
			ReadAt:      m.ReadAt,
			Counterpart: toSummaryResponse(m.Counterpart),
		}
	}
	return out
}
