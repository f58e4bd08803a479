package handler

import "time"

type sendMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required"`
	Body       string `json:"body"        validate:"required"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type userSummaryResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type sendMessageResponse struct {
	ID           string     `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`
}

type messageDetailResponse struct {
	ID     string              `json:"id"`
	Body   string              `json:"body"`
	SentAt time.Time           `json:"sent_at"`
	ReadAt *time.Time          `json:"read_at"`
	From   userSummaryResponse `json:"from_user"`
	To     userSummaryResponse `json:"to_user"`
}

type markReadResponse struct {
	ID     string    `json:"id"`
	ReadAt time.Time `json:"read_at"`
}

// userMessageResponse is one entry in a per-user message listing; the
// counterpart is the other endpoint of the conversation.
type userMessageResponse struct {
	ID          string              `json:"id"`
	Body        string              `json:"body"`
	SentAt      time.Time           `json:"sent_at"`
	ReadAt      *time.Time          `json:"read_at"`
	Counterpart userSummaryResponse `json:"counterpart"`
}
