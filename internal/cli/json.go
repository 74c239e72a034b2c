package cli

import (
	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/mailbox"
)

// ---------------------------------------------------------------------------
// Message JSON type (list, range, show)
// ---------------------------------------------------------------------------

type jsonEmail struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
	IsRead    bool   `json:"is_read"`
}

func toJSONEmail(e domain.Email, read bool) jsonEmail {
	return jsonEmail{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		From:      e.From,
		To:        e.To,
		Subject:   e.Subject,
		Body:      e.Body,
		ParentID:  e.ParentID,
		IsRead:    read,
	}
}

func toJSONEmails(mb *mailbox.MailBox, emails []domain.Email) []jsonEmail {
	out := make([]jsonEmail, 0, len(emails))
	for _, e := range emails {
		out = append(out, toJSONEmail(e, isRead(mb, e.ID)))
	}
	return out
}

// ---------------------------------------------------------------------------
// Thread JSON type (threads, thread)
// ---------------------------------------------------------------------------

type jsonThread struct {
	ID            string      `json:"id"`
	Subject       string      `json:"subject"`
	LastTimestamp int64       `json:"last_timestamp"`
	MessageCount  int         `json:"message_count"`
	UnreadCount   int         `json:"unread_count"`
	Messages      []jsonEmail `json:"messages"`
}

func toJSONThread(mb *mailbox.MailBox, t *domain.Thread) jsonThread {
	return jsonThread{
		ID:            t.ID,
		Subject:       t.Subject,
		LastTimestamp: t.LastTimestamp,
		MessageCount:  t.MessageCount(),
		UnreadCount:   t.Unread,
		Messages:      toJSONEmails(mb, t.Messages),
	}
}

func toJSONThreads(mb *mailbox.MailBox, threads []domain.Thread) []jsonThread {
	out := make([]jsonThread, 0, len(threads))
	for i := range threads {
		out = append(out, toJSONThread(mb, &threads[i]))
	}
	return out
}

// ---------------------------------------------------------------------------
// Count JSON type (count)
// ---------------------------------------------------------------------------

type jsonCount struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// ---------------------------------------------------------------------------
// Action JSON type (add, mark, delete)
// ---------------------------------------------------------------------------

type jsonAction struct {
	OK        bool   `json:"ok"`
	Action    string `json:"action"`
	MessageID string `json:"message_id,omitempty"`
}

// isRead returns the read flag of a message taken from mb itself.
func isRead(mb *mailbox.MailBox, id string) bool {
	read, err := mb.IsRead(id)
	return err == nil && read
}
