package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
	"github.com/messagely/messaging-api/internal/core/token"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	issuer   *token.Issuer
	throttle LoginThrottle
	audit    ports.AuditSink
	cost     int
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. throttle and audit may be nil, in
// which case throttling and audit recording are skipped.
func NewAuthService(users ports.UserRepository, issuer *token.Issuer, throttle LoginThrottle, audit ports.AuditSink, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:    users,
		issuer:   issuer,
		throttle: throttle,
		audit:    audit,
		cost:     bcryptCost,
		log:      log,
	}
}

// Register creates the account, records the initial login and returns the
// stored profile plus a session token. Registration counts as a login.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if input.Username == "" || input.Password == "" {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		JoinedAt:     time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	lastLogin, err := s.users.UpdateLastLogin(ctx, created.Username)
	if err != nil {
		return nil, "", err
	}
	created.LastLoginAt = lastLogin

	tok, err := s.issuer.Issue(created.Username)
	if err != nil {
		return nil, "", err
	}

	s.enqueueAudit(created.Username, domain.AuditRegister, "")
	s.log.Info().Str("username", created.Username).Msg("user registered")
	return created, tok, nil
}

// Authenticate verifies the credentials without side effects. An unknown
// username and a wrong password are indistinguishable to the caller so
// accounts cannot be enumerated through the login flow.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	// A malformed stored hash also fails here, as a verification failure.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Login verifies credentials, updates last_login_at and mints a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, proceeding")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	if err := s.Authenticate(ctx, username, password); err != nil {
		if s.throttle != nil {
			if thErr := s.throttle.RecordFailure(ctx, username); thErr != nil {
				s.log.Warn().Err(thErr).Str("username", username).Msg("failed to record login failure")
			}
		}
		return "", err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	if _, err := s.users.UpdateLastLogin(ctx, username); err != nil {
		return "", err
	}

	tok, err := s.issuer.Issue(username)
	if err != nil {
		return "", err
	}

	s.enqueueAudit(username, domain.AuditLogin, "")
	s.log.Info().Str("username", username).Msg("user logged in")
	return tok, nil
}

func (s *AuthService) enqueueAudit(username, action, target string) {
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
