package domain

// Thread is a group of messages connected by reply links.
type Thread struct {
	// ID is the ID of the thread's root message.
	ID            string
	Subject       string
	Messages      []Email // most recent first
	LastTimestamp int64
	Unread        int
}

// MessageCount returns the number of messages in the thread.
func (t *Thread) MessageCount() int {
	return len(t.Messages)
}

// IsUnread reports whether any message in the thread is unread.
func (t *Thread) IsUnread() bool {
	return t.Unread > 0
}
