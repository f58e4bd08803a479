package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

type stubMessageRepo struct {
	messages map[string]*domain.Message
	order    []string
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{messages: make(map[string]*domain.Message)}
}

func cloneMessage(m *domain.Message) *domain.Message {
	if m == nil {
		return nil
	}
	clone := *m
	if m.ReadAt != nil {
		at := *m.ReadAt
		clone.ReadAt = &at
	}
	return &clone
}

func (r *stubMessageRepo) Insert(_ context.Context, m *domain.Message) error {
	r.messages[m.ID] = cloneMessage(m)
	r.order = append(r.order, m.ID)
	return nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	return cloneMessage(m), nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, id string, at time.Time) (time.Time, error) {
	m, ok := r.messages[id]
	if !ok {
		return time.Time{}, domain.ErrMessageNotFound
	}
	if m.ReadAt != nil {
		return *m.ReadAt, nil
	}
	stamp := at.UTC()
	m.ReadAt = &stamp
	return stamp, nil
}

func (r *stubMessageRepo) ListFromUser(_ context.Context, username string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, id := range r.order {
		if m := r.messages[id]; m.FromUsername == username {
			out = append(out, cloneMessage(m))
		}
	}
	return out, nil
}

func (r *stubMessageRepo) ListToUser(_ context.Context, username string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, id := range r.order {
		if m := r.messages[id]; m.ToUsername == username {
			out = append(out, cloneMessage(m))
		}
	}
	return out, nil
}

func seedUsers(repo *stubUserRepo, usernames ...string) {
	for _, name := range usernames {
		repo.users[name] = &domain.User{
			Username:  name,
			FirstName: "F-" + name,
			LastName:  "L-" + name,
			Phone:     "555-" + name,
			JoinedAt:  time.Now().UTC(),
		}
		repo.order = append(repo.order, name)
	}
}

func newMessageService(messages *stubMessageRepo, users *stubUserRepo, audit ports.AuditSink) *MessageService {
	return NewMessageService(messages, users, audit, zerolog.Nop())
}

func TestMessageService_Send(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob")
	messages := newStubMessageRepo()
	audit := &stubAuditSink{}
	svc := newMessageService(messages, users, audit)

	m, err := svc.Send(context.Background(), ports.SendMessageInput{
		FromUsername: "alice",
		ToUsername:   "bob",
		Body:         "hi",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if m.SentAt.IsZero() {
		t.Fatalf("expected sent_at to be set")
	}
	if m.ReadAt != nil {
		t.Fatalf("new message must be unread")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditMessageSent {
		t.Fatalf("expected one message_sent audit event, got %+v", audit.events)
	}
}

func TestMessageService_Send_Invalid(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob")
	svc := newMessageService(newStubMessageRepo(), users, nil)

	if _, err := svc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: "bob"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty body, got %v", err)
	}
	if _, err := svc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: "ghost", Body: "hi"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown recipient, got %v", err)
	}
}

func TestMessageService_Get(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob", "carol")
	messages := newStubMessageRepo()
	svc := newMessageService(messages, users, nil)

	m, err := svc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// Sender and recipient both read; profiles are resolved on both ends.
	for _, principal := range []string{"alice", "bob"} {
		detail, err := svc.Get(context.Background(), m.ID, principal)
		if err != nil {
			t.Fatalf("get as %s failed: %v", principal, err)
		}
		if detail.From.Username != "alice" || detail.From.FirstName != "F-alice" {
			t.Fatalf("sender profile not resolved: %+v", detail.From)
		}
		if detail.To.Username != "bob" || detail.To.FirstName != "F-bob" {
			t.Fatalf("recipient profile not resolved: %+v", detail.To)
		}
	}

	// A third party is denied, not given an empty result.
	if _, err := svc.Get(context.Background(), m.ID, "carol"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	if _, err := svc.Get(context.Background(), "no-such-id", "alice"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestMessageService_MarkRead(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob")
	messages := newStubMessageRepo()
	audit := &stubAuditSink{}
	svc := newMessageService(messages, users, audit)

	m, err := svc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// The sender may never mark their own message read.
	if _, err := svc.MarkRead(context.Background(), m.ID, "alice"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for sender, got %v", err)
	}

	result, err := svc.MarkRead(context.Background(), m.ID, "bob")
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if result.ReadAt.Before(m.SentAt) {
		t.Fatalf("read_at %v must not precede sent_at %v", result.ReadAt, m.SentAt)
	}

	// Second call observes the same timestamp; no second state change.
	again, err := svc.MarkRead(context.Background(), m.ID, "bob")
	if err != nil {
		t.Fatalf("repeated mark read failed: %v", err)
	}
	if !again.ReadAt.Equal(result.ReadAt) {
		t.Fatalf("mark read is not idempotent: %v != %v", again.ReadAt, result.ReadAt)
	}

	if _, err := svc.MarkRead(context.Background(), "no-such-id", "bob"); !errors.Is(err, domain.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
