package domain

import "testing"

func TestNewEmail(t *testing.T) {
	e := NewEmail(42, "alice@example.com", "bob@example.com", "Hello", "Hi Bob")
	if e.ID == "" {
		t.Fatal("NewEmail() returned empty ID")
	}
	if e.Timestamp != 42 {
		t.Errorf("Timestamp = %d, want 42", e.Timestamp)
	}
	if e.ParentID != NoParent {
		t.Errorf("ParentID = %q, want NoParent", e.ParentID)
	}
	if !e.IsRoot() {
		t.Error("expected IsRoot() = true for NewEmail")
	}
}

func TestNewReply(t *testing.T) {
	root := NewEmail(1, "alice@example.com", "bob@example.com", "Hello", "Hi")
	reply := NewReply(2, "bob@example.com", "alice@example.com", "Re: Hello", "Hey", root.ID)
	if reply.ParentID != root.ID {
		t.Errorf("ParentID = %q, want %q", reply.ParentID, root.ID)
	}
	if reply.IsRoot() {
		t.Error("expected IsRoot() = false for a reply")
	}
	if reply.ID == root.ID {
		t.Error("reply and root share an ID")
	}
}

func TestNewEmail_DistinctIDs(t *testing.T) {
	a := NewEmail(1, "a", "b", "s", "body")
	b := NewEmail(1, "a", "b", "s", "body")
	if a.ID == b.ID {
		t.Errorf("identical fields produced the same ID %q", a.ID)
	}
	if a == b {
		t.Error("emails with different IDs compare equal")
	}
}
