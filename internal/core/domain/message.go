package domain

import (
	"errors"
	"time"
)

var ErrMessageNotFound = errors.New("message not found")
var ErrUnauthorized = errors.New("unauthorized")

// Message is a directed note between two users. FromUsername, ToUsername and
// SentAt are immutable after creation; ReadAt transitions from nil to a
// timestamp exactly once, and only the recipient may trigger that transition.
type Message struct {
	ID           string     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

// CanRead reports whether username may read the message: either endpoint of
// the conversation qualifies.
func (m *Message) CanRead(username string) bool {
	return username == m.FromUsername || username == m.ToUsername
}

// CanMarkRead reports whether username may set the read timestamp. Only the
// recipient qualifies; the sender can never mark their own message read.
func (m *Message) CanMarkRead(username string) bool {
	return username == m.ToUsername
}
