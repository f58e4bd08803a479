package domain

import "time"

const (
	AuditRegister    = "register"
	AuditLogin       = "login"
	AuditMessageSent = "message_sent"
	AuditMessageRead = "message_read"
)

// AuditEvent records a security-relevant action performed by a user.
type AuditEvent struct {
	Username string
	Action   string
	Target   string // message id or counterpart username, empty for auth events
	At       time.Time
}
