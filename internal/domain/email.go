package domain

import "github.com/google/uuid"

// NoParent is the ParentID of a message that starts a new thread.
const NoParent = ""

// Email is an immutable message value. Identity is the ID; two emails with
// different IDs are distinct even when every other field matches.
type Email struct {
	ID        string
	Timestamp int64
	From      string
	To        string
	Subject   string
	Body      string
	ParentID  string
}

// NewEmail returns a thread-starting message with a fresh ID.
func NewEmail(timestamp int64, from, to, subject, body string) Email {
	return NewReply(timestamp, from, to, subject, body, NoParent)
}

// NewReply returns a message replying to parentID with a fresh ID.
func NewReply(timestamp int64, from, to, subject, body, parentID string) Email {
	return Email{
		ID:        uuid.NewString(),
		Timestamp: timestamp,
		From:      from,
		To:        to,
		Subject:   subject,
		Body:      body,
		ParentID:  parentID,
	}
}

// IsRoot reports whether the message does not reply to anything.
func (e Email) IsRoot() bool {
	return e.ParentID == NoParent
}
