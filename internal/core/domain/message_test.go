package domain

import "testing"

func TestMessage_CanRead(t *testing.T) {
	m := &Message{FromUsername: "alice", ToUsername: "bob"}

	if !m.CanRead("alice") {
		t.Fatalf("sender should be able to read")
	}
	if !m.CanRead("bob") {
		t.Fatalf("recipient should be able to read")
	}
	if m.CanRead("carol") {
		t.Fatalf("third party should not be able to read")
	}
	if m.CanRead("") {
		t.Fatalf("empty principal should not be able to read")
	}
}

func TestMessage_CanMarkRead(t *testing.T) {
	m := &Message{FromUsername: "alice", ToUsername: "bob"}

	if !m.CanMarkRead("bob") {
		t.Fatalf("recipient should be able to mark read")
	}
	if m.CanMarkRead("alice") {
		t.Fatalf("sender must never mark their own message read")
	}
	if m.CanMarkRead("carol") {
		t.Fatalf("third party should not be able to mark read")
	}
}
