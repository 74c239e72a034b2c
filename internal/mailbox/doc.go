// Package mailbox holds an in-memory collection of email messages with
// per-message read flags, and produces chronological, ranged and threaded
// views of it.
//
// A thread is a connected component of the reply graph: a message and the
// stored message its ParentID names are joined by an edge. Parents that are
// not stored are ignored, so a reply to a missing message roots its own
// thread. Traversal keeps a visited set and terminates on cyclic input.
//
// A MailBox is not safe for concurrent use. Callers sharing one across
// goroutines must serialise every call, reads included.
package mailbox
