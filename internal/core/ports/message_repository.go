package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	// MarkRead sets read_at to `at` if it is still unset and returns the
	// effective stored timestamp. When another call already set read_at, the
	// previously stored value is returned; losing a race is never an error.
	MarkRead(ctx context.Context, id string, at time.Time) (time.Time, error)
	ListFromUser(ctx context.Context, username string) ([]*domain.Message, error)
	ListToUser(ctx context.Context, username string) ([]*domain.Message, error)
}
