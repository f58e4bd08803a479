package service

import (
	"context"
	"fmt"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

// UserService implements profile lookups and per-user message listings.
type UserService struct {
	users    ports.UserRepository
	messages ports.MessageRepository
}

func NewUserService(users ports.UserRepository, messages ports.MessageRepository) *UserService {
	return &UserService{users: users, messages: messages}
}

// ListUsers returns basic info for every user, in insertion order.
func (s *UserService) ListUsers(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserSummary, len(users))
	for i, u := range users {
		out[i] = ports.UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Phone:     u.Phone,
		}
	}
	return out, nil
}

// GetProfile returns the full profile including join and last-login times.
func (s *UserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// MessagesFrom returns messages sent by username, each with the recipient's
// profile resolved.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]ports.UserMessage, error) {
	messages, err := s.messages.ListFromUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("messages from %s: %w", username, err)
	}
	return s.resolveCounterparts(ctx, messages, func(m *domain.Message) string { return m.ToUsername })
}

// MessagesTo returns messages received by username, each with the sender's
// profile resolved.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]ports.UserMessage, error) {
	messages, err := s.messages.ListToUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("messages to %s: %w", username, err)
	}
	return s.resolveCounterparts(ctx, messages, func(m *domain.Message) string { return m.FromUsername })
}

// resolveCounterparts attaches counterpart profiles using a single batched
// lookup over the distinct counterpart usernames, regardless of list length.
func (s *UserService) resolveCounterparts(ctx context.Context, messages []*domain.Message, counterpart func(*domain.Message) string) ([]ports.UserMessage, error) {
	distinct := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		name := counterpart(m)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}

	profiles := map[string]*domain.User{}
	if len(distinct) > 0 {
		var err error
		profiles, err = s.users.FindByUsernames(ctx, distinct)
		if err != nil {
			return nil, fmt.Errorf("resolve counterparts: %w", err)
		}
	}

	out := make([]ports.UserMessage, len(messages))
	for i, m := range messages {
		out[i] = ports.UserMessage{
			ID:          m.ID,
			Body:        m.Body,
			SentAt:      m.SentAt,
			ReadAt:      m.ReadAt,
			Counterpart: summaryFor(profiles, counterpart(m)),
		}
	}
	return out, nil
}
