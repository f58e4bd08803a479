package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// UserSummary is the basic public view of a user.
type UserSummary struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// UserMessage is a message as seen from one user's perspective: the other
// endpoint of the conversation is resolved to its profile summary.
type UserMessage struct {
	ID          string
	Body        string
	SentAt      time.Time
	ReadAt      *time.Time
	Counterpart UserSummary
}

// UserService defines profile and message-listing use cases.
type UserService interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	GetProfile(ctx context.Context, username string) (*domain.User, error)
	// MessagesFrom returns messages sent by username with recipient profiles resolved.
	MessagesFrom(ctx context.Context, username string) ([]UserMessage, error)
	// MessagesTo returns messages received by username with sender profiles resolved.
	MessagesTo(ctx context.Context, username string) ([]UserMessage, error)
}
