package service

import (
	"context"
	"errors"
	"testing"

	"github.com/messagely/messaging-api/internal/core/domain"
	"github.com/messagely/messaging-api/internal/core/ports"
)

func TestUserService_ListUsers(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob")
	svc := NewUserService(users, newStubMessageRepo())

	list, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if list[0].Username != "alice" || list[1].Username != "bob" {
		t.Fatalf("expected insertion order, got %+v", list)
	}
}

func TestUserService_GetProfile(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice")
	svc := NewUserService(users, newStubMessageRepo())

	u, err := svc.GetProfile(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if u.Username != "alice" || u.JoinedAt.IsZero() {
		t.Fatalf("unexpected profile: %+v", u)
	}

	if _, err := svc.GetProfile(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_MessagesFrom_BatchesProfileLookups(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob", "carol")
	messages := newStubMessageRepo()
	msgSvc := newMessageService(messages, users, nil)

	// Three messages but only two distinct counterparts.
	for _, to := range []string{"bob", "carol", "bob"} {
		if _, err := msgSvc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: to, Body: "hi " + to}); err != nil {
			t.Fatalf("send failed: %v", err)
		}
	}

	svc := NewUserService(users, messages)
	users.findBatchCalls = 0

	out, err := svc.MessagesFrom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("messages from failed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(out))
	}
	if out[0].Counterpart.Username != "bob" || out[1].Counterpart.Username != "carol" {
		t.Fatalf("counterparts not resolved: %+v", out)
	}
	if out[0].Counterpart.FirstName != "F-bob" {
		t.Fatalf("counterpart profile not populated: %+v", out[0].Counterpart)
	}

	// One batched query regardless of list length.
	if users.findBatchCalls != 1 {
		t.Fatalf("expected exactly one profile query, got %d", users.findBatchCalls)
	}
}

func TestUserService_MessagesTo(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice", "bob")
	messages := newStubMessageRepo()
	msgSvc := newMessageService(messages, users, nil)

	if _, err := msgSvc.Send(context.Background(), ports.SendMessageInput{FromUsername: "alice", ToUsername: "bob", Body: "hi"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	svc := NewUserService(users, messages)
	out, err := svc.MessagesTo(context.Background(), "bob")
	if err != nil {
		t.Fatalf("messages to failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if out[0].Counterpart.Username != "alice" {
		t.Fatalf("expected sender as counterpart, got %+v", out[0].Counterpart)
	}
	if out[0].ReadAt != nil {
		t.Fatalf("expected unread message")
	}
}

func TestUserService_MessagesFrom_Empty(t *testing.T) {
	users := newStubUserRepo()
	seedUsers(users, "alice")
	svc := NewUserService(users, newStubMessageRepo())

	out, err := svc.MessagesFrom(context.Background(), "alice")
	if err != nil {
		t.Fatalf("messages from failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no messages, got %d", len(out))
	}
	if users.findBatchCalls != 0 {
		t.Fatalf("empty list must not trigger a profile query")
	}
}
