package mailbox

import (
	"cmp"
	"slices"

	"github.com/lu-zhengda/mailbox/internal/domain"
)

// replyGraph is the undirected reply graph: adjacency lists keyed by ID.
type replyGraph map[string][]string

// parent returns the stored message e replies to. Self-replies and missing
// parents yield false.
func (m *MailBox) parent(e domain.Email) (string, bool) {
	if e.ParentID == domain.NoParent || e.ParentID == e.ID {
		return "", false
	}
	if _, ok := m.emails[e.ParentID]; !ok {
		return "", false
	}
	return e.ParentID, true
}

func (m *MailBox) replyGraph() replyGraph {
	g := make(replyGraph, len(m.emails))
	for id, e := range m.emails {
		p, ok := m.parent(e)
		if !ok {
			continue
		}
		g[id] = append(g[id], p)
		g[p] = append(g[p], id)
	}
	return g
}

// component returns the IDs reachable from start, start included, and
// records them in visited.
func (g replyGraph) component(start string, visited map[string]bool) []string {
	ids := []string{start}
	visited[start] = true
	for i := 0; i < len(ids); i++ {
		for _, next := range g[ids[i]] {
			if visited[next] {
				continue
			}
			visited[next] = true
			ids = append(ids, next)
		}
	}
	return ids
}

func (m *MailBox) buildThread(ids []string) domain.Thread {
	msgs := make([]domain.Email, 0, len(ids))
	unread := 0
	for _, id := range ids {
		msgs = append(msgs, m.emails[id])
		if !m.read[id] {
			unread++
		}
	}
	slices.SortFunc(msgs, newestFirst)

	// The root is the oldest message without a stored parent; a cycle has
	// none, so fall back to the oldest message.
	root := msgs[len(msgs)-1]
	for i := len(msgs) - 1; i >= 0; i-- {
		if _, ok := m.parent(msgs[i]); !ok {
			root = msgs[i]
			break
		}
	}

	return domain.Thread{
		ID:            root.ID,
		Subject:       root.Subject,
		Messages:      msgs,
		LastTimestamp: msgs[0].Timestamp,
		Unread:        unread,
	}
}

// Thread returns the thread containing the message with the given ID.
func (m *MailBox) Thread(id string) (domain.Thread, bool) {
	if _, ok := m.emails[id]; !ok {
		return domain.Thread{}, false
	}
	ids := m.replyGraph().component(id, make(map[string]bool))
	return m.buildThread(ids), true
}

// Threads groups every message into threads. Threads are ordered by their
// most recent message, newest first; messages inside a thread are newest
// first. Ties at either level are in unspecified order.
func (m *MailBox) Threads() []domain.Thread {
	g := m.replyGraph()
	visited := make(map[string]bool, len(m.emails))
	threads := make([]domain.Thread, 0)
	for id := range m.emails {
		if visited[id] {
			continue
		}
		threads = append(threads, m.buildThread(g.component(id, visited)))
	}
	slices.SortFunc(threads, func(a, b domain.Thread) int {
		return cmp.Compare(b.LastTimestamp, a.LastTimestamp)
	})
	return threads
}

// ThreadedView returns every message grouped by thread, in Threads order.
func (m *MailBox) ThreadedView() []domain.Email {
	out := make([]domain.Email, 0, len(m.emails))
	for _, t := range m.Threads() {
		out = append(out, t.Messages...)
	}
	return out
}

// MarkThreadRead flags every message in the thread containing id as read.
// It returns false if id is not stored.
func (m *MailBox) MarkThreadRead(id string) bool {
	return m.setThreadRead(id, true)
}

// MarkThreadUnread flags every message in the thread containing id as
// unread. It returns false if id is not stored.
func (m *MailBox) MarkThreadUnread(id string) bool {
	return m.setThreadRead(id, false)
}

func (m *MailBox) setThreadRead(id string, read bool) bool {
	if id == "" {
		return false
	}
	if _, ok := m.emails[id]; !ok {
		return false
	}
	for _, member := range m.replyGraph().component(id, make(map[string]bool)) {
		m.read[member] = read
	}
	return true
}
