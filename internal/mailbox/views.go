package mailbox

import (
	"cmp"
	"slices"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

func newestFirst(a, b domain.Email) int {
	return cmp.Compare(b.Timestamp, a.Timestamp)
}

func oldestFirst(a, b domain.Email) int {
	return cmp.Compare(a.Timestamp, b.Timestamp)
}

// TimestampView returns every message, most recent first. The order of
// messages sharing a timestamp is unspecified.
func (m *MailBox) TimestampView() []domain.Email {
	out := make([]domain.Email, 0, len(m.emails))
	for _, e := range m.emails {
		out = append(out, e)
	}
	slices.SortFunc(out, newestFirst)
	return out
}

// InRange returns the messages with start <= Timestamp <= end, earliest
// first. It requires end >= start >= 0 and returns nothing otherwise.
func (m *MailBox) InRange(start, end int64) []domain.Email {
	if start < 0 || end < start {
		return nil
	}
	out := make([]domain.Email, 0)
	for _, e := range m.emails {
		if e.Timestamp >= start && e.Timestamp <= end {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, oldestFirst)
	return out
}

// Unread returns the unread messages, most recent first.
func (m *MailBox) Unread() []domain.Email {
	out := make([]domain.Email, 0)
	for id, e := range m.emails {
		if !m.read[id] {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, newestFirst)
	return out
}
