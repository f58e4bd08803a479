package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// SendMessageInput carries all data needed to create a message.
type SendMessageInput struct {
	FromUsername string
	ToUsername   string
	Body         string
}

// MessageDetail is the full message view with both endpoint profiles resolved.
type MessageDetail struct {
	ID     string
	Body   string
	SentAt time.Time
	ReadAt *time.Time
	From   UserSummary
	To     UserSummary
}

// MarkReadResult reports the effective read timestamp after a mark-read call.
type MarkReadResult struct {
	ID     string
	ReadAt time.Time
}

// MessageService defines message use cases. Get and MarkRead enforce the
// access rules on the fetched message: reading requires being sender or
// recipient, marking read requires being the recipient. Denials surface as
// domain.ErrUnauthorized, never as a silently filtered result.
type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	Get(ctx context.Context, id, actingUsername string) (*MessageDetail, error)
	MarkRead(ctx context.Context, id, actingUsername string) (*MarkReadResult, error)
}
