package mailfile

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/mailbox"
)

// Email converts the entry to a domain.Email.
func (e Entry) Email() domain.Email {
	return domain.Email{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		From:      e.From,
		To:        e.To,
		Subject:   e.Subject,
		Body:      e.Body,
		ParentID:  e.Parent,
	}
}

// Populate adds every entry of file to mb and applies its read flag.
// Entries without an ID get a fresh one; entries whose ID is already in mb
// are skipped with a warning. It returns the number of messages added.
func Populate(mb *mailbox.MailBox, file *File, logger *slog.Logger) int {
	added := 0
	for _, entry := range file.Messages {
		email := entry.Email()
		if email.ID == "" {
			email.ID = uuid.NewString()
			logger.Debug("assigned message id", "id", email.ID, "subject", email.Subject)
		}
		if !mb.Add(&email) {
			logger.Warn("skipping duplicate message", "id", email.ID)
			continue
		}
		if entry.Read {
			mb.MarkRead(email.ID)
		}
		added++
	}
	logger.Debug("populated mailbox", "added", added, "entries", len(file.Messages))
	return added
}

// Capture builds a File holding every message in mb with its read flag.
func Capture(mb *mailbox.MailBox) *File {
	view := mb.TimestampView()
	entries := make([]Entry, 0, len(view))
	for _, e := range view {
		// IDs come from mb itself, so IsRead cannot fail.
		read, _ := mb.IsRead(e.ID)
		entries = append(entries, Entry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			From:      e.From,
			To:        e.To,
			Subject:   e.Subject,
			Body:      e.Body,
			Parent:    e.ParentID,
			Read:      read,
		})
	}
	sortEntries(entries)
	return &File{Messages: entries}
}
