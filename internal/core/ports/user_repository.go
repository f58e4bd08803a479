package ports

import (
	"context"
	"time"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Username uniqueness is enforced by the storage backend, not by callers:
// exactly one of any set of concurrent Create calls for the same username
// succeeds, the rest fail with domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateLastLogin sets last_login_at to the current time and returns the
	// stored timestamp. Fails with domain.ErrUserNotFound for unknown users.
	UpdateLastLogin(ctx context.Context, username string) (time.Time, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	// FindByUsernames resolves a set of usernames in a single query and
	// returns the matches keyed by username. Unknown usernames are absent
	// from the result, not an error.
	FindByUsernames(ctx context.Context, usernames []string) (map[string]*domain.User, error)
}
