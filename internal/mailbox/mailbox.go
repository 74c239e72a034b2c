package mailbox

import (
	"errors"
	"fmt"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

// ErrUnknownMessage is returned when an operation requires a stored message
// and the ID is not in the mailbox.
var ErrUnknownMessage = errors.New("unknown message")

// MailBox stores messages by ID alongside their read flags.
type MailBox struct {
	emails map[string]domain.Email
	// read has exactly one entry per key of emails.
	read map[string]bool
}

// New returns an empty MailBox.
func New() *MailBox {
	return &MailBox{
		emails: make(map[string]domain.Email),
		read:   make(map[string]bool),
	}
}

// Add stores a copy of msg as unread. It returns false without changing
// anything if msg is nil, has no ID, or a message with the same ID is
// already stored.
func (m *MailBox) Add(msg *domain.Email) bool {
	if msg == nil || msg.ID == "" {
		return false
	}
	if _, ok := m.emails[msg.ID]; ok {
		return false
	}
	m.emails[msg.ID] = *msg
	m.read[msg.ID] = false
	return true
}

// Get returns the message with the given ID.
func (m *MailBox) Get(id string) (domain.Email, bool) {
	e, ok := m.emails[id]
	return e, ok
}

// Delete removes the message and its read flag. It reports whether a
// message was removed.
func (m *MailBox) Delete(id string) bool {
	if _, ok := m.emails[id]; !ok {
		return false
	}
	delete(m.emails, id)
	delete(m.read, id)
	return true
}

// Count returns the number of stored messages.
func (m *MailBox) Count() int {
	return len(m.emails)
}

// MarkRead flags the message as read. It returns false if the message is
// not stored.
func (m *MailBox) MarkRead(id string) bool {
	return m.setRead(id, true)
}

// MarkUnread flags the message as unread. It returns false if the message
// is not stored.
func (m *MailBox) MarkUnread(id string) bool {
	return m.setRead(id, false)
}

func (m *MailBox) setRead(id string, read bool) bool {
	if _, ok := m.emails[id]; !ok {
		return false
	}
	m.read[id] = read
	return true
}

// IsRead returns the read flag of a stored message. Asking about an ID that
// is not stored is a caller error and returns ErrUnknownMessage.
func (m *MailBox) IsRead(id string) (bool, error) {
	read, ok := m.read[id]
	if !ok {
		return false, fmt.Errorf("message %q: %w", id, ErrUnknownMessage)
	}
	return read, nil
}

// UnreadCount returns the number of messages not flagged as read.
func (m *MailBox) UnreadCount() int {
	count := 0
	for _, read := range m.read {
		if !read {
			count++
		}
	}
	return count
}

// Clear removes every message.
func (m *MailBox) Clear() {
	clear(m.emails)
	clear(m.read)
}
