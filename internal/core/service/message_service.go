package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// MessageService implements message use cases and enforces per-message access
// rules on already-fetched entities.
type MessageService struct {
	messages ports.MessageRepository
	users    ports.UserRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, users ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, users: users, audit: audit, log: log}
}

// Send creates a message from the acting user to an existing recipient.
func (s *MessageService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	if input.FromUsername == "" || input.ToUsername == "" || input.Body == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.users.FindByUsername(ctx, input.ToUsername); err != nil {
		return nil, err
	}

	m := &domain.Message{
		ID:           uuid.NewString(),
		FromUsername: input.FromUsername,
		ToUsername:   input.ToUsername,
		Body:         input.Body,
		SentAt:       time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.enqueueAudit(input.FromUsername, domain.AuditMessageSent, m.ID)
	s.log.Info().Str("id", m.ID).Str("from", m.FromUsername).Str("to", m.ToUsername).Msg("message sent")
	return m, nil
}

// Get fetches a message and resolves both endpoint profiles. Callers that are
// neither sender nor recipient are denied with domain.ErrUnauthorized; the
// message's existence is not hidden, only its content.
func (s *MessageService) Get(ctx context.Context, id, actingUsername string) (*ports.MessageDetail, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanRead(actingUsername) {
		return nil, domain.ErrUnauthorized
	}

	// Both profiles in one query.
	profiles, err := s.users.FindByUsernames(ctx, []string{m.FromUsername, m.ToUsername})
	if err != nil {
		return nil, fmt.Errorf("get message: resolve profiles: %w", err)
	}

	return &ports.MessageDetail{
		ID:     m.ID,
		Body:   m.Body,
		SentAt: m.SentAt,
		ReadAt: m.ReadAt,
		From:   summaryFor(profiles, m.FromUsername),
		To:     summaryFor(profiles, m.ToUsername),
	}, nil
}

// MarkRead sets the message's read timestamp. Only the recipient may do this;
// repeated and concurrent calls all observe the same stored timestamp.
func (s *MessageService) MarkRead(ctx context.Context, id, actingUsername string) (*ports.MarkReadResult, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.CanMarkRead(actingUsername) {
		return nil, domain.ErrUnauthorized
	}

	if m.ReadAt != nil {
		return &ports.MarkReadResult{ID: m.ID, ReadAt: *m.ReadAt}, nil
	}

	readAt, err := s.messages.MarkRead(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("mark read: %w", err)
	}

	s.enqueueAudit(actingUsername, domain.AuditMessageRead, m.ID)
	return &ports.MarkReadResult{ID: m.ID, ReadAt: readAt}, nil
}

func (s *MessageService) enqueueAudit(username, action, target string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Username: username,
		Action:   action,
		Target:   target,
		At:       time.Now().UTC(),
	})
}

// summaryFor builds a UserSummary from the resolved profile map. A missing
// profile degrades to a username-only summary instead of failing the request.
func summaryFor(profiles map[string]*domain.User, username string) ports.UserSummary {
	u, ok := profiles[username]
	if !ok {
		return ports.UserSummary{Username: username}
	}
	return ports.UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
