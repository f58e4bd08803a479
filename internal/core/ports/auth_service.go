package ports

import (
	"context"

	"github.com/messagely/messaging-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates the account, records the initial login and returns the
	// stored profile plus a freshly minted session token.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login verifies credentials, updates last_login_at and returns a session
	// token. Unknown usernames and wrong passwords both fail with
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, error)
	// Authenticate checks credentials without any side effects.
	Authenticate(ctx context.Context, username, password string) error
}
