package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/lu-zhengda/mailbox/internal/domain"
	"github.com/lu-zhengda/mailbox/internal/mailbox"
)

func TestFprintJSON(t *testing.T) {
	t.Run("simple struct", func(t *testing.T) {
		var buf bytes.Buffer
		input := map[string]string{"key": "value"}

		if err := fprintJSON(&buf, input); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}

		var got map[string]string
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if got["key"] != "value" {
			t.Errorf("got key=%q, want %q", got["key"], "value")
		}
	})

	t.Run("indented output", func(t *testing.T) {
		var buf bytes.Buffer
		if err := fprintJSON(&buf, map[string]int{"a": 1}); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}
		if buf.String() == `{"a":1}`+"\n" {
			t.Error("expected indented JSON, got compact")
		}
	})

	t.Run("empty slice", func(t *testing.T) {
		var buf bytes.Buffer
		if err := fprintJSON(&buf, []string{}); err != nil {
			t.Fatalf("fprintJSON() error = %v", err)
		}
		if got := buf.String(); got != "[]\n" {
			t.Errorf("got %q, want %q", got, "[]\n")
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a rather long subject line", 10, "a rather …"},
		{strings.Repeat("é", 30), 50, strings.Repeat("é", 30)},
		{"日本語のメール件名", 5, "日本語の…"},
		{"abc", 1, "a"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) = %q, not valid UTF-8", tt.in, tt.n, got)
			}
		})
	}
}

func TestPrintEmails_Table(t *testing.T) {
	mb := mailbox.New()
	read := domain.Email{ID: "r1", Timestamp: 2, From: "alice@example.com", Subject: "Seen"}
	unread := domain.Email{ID: "u1", Timestamp: 1, From: "bob@example.com", Subject: "Fresh"}
	mb.Add(&read)
	mb.Add(&unread)
	mb.MarkRead(read.ID)

	var buf bytes.Buffer
	if err := printEmails(&buf, mb, mb.TimestampView()); err != nil {
		t.Fatalf("printEmails() error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "UNREAD") {
		t.Errorf("header = %q, want UNREAD column first", lines[0])
	}
	if !strings.Contains(lines[1], "r1") || strings.HasPrefix(lines[1], "*") {
		t.Errorf("row 1 = %q, want read message r1 without marker", lines[1])
	}
	if !strings.Contains(lines[2], "u1") || !strings.HasPrefix(lines[2], "*") {
		t.Errorf("row 2 = %q, want unread message u1 with marker", lines[2])
	}
}

func TestPrintEmails_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := printEmails(&buf, mailbox.New(), nil); err != nil {
		t.Fatalf("printEmails() error: %v", err)
	}
	if got := buf.String(); got != "No messages found.\n" {
		t.Errorf("got %q, want %q", got, "No messages found.\n")
	}
}

func TestPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	e := domain.Email{ID: "m2", Timestamp: 7, From: "a", To: "b", Subject: "Re: Hi", Body: "Hello", ParentID: "m1"}
	if err := printMessage(&buf, e, false); err != nil {
		t.Fatalf("printMessage() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Subject: Re: Hi", "Status: unread", "In-Reply-To: m1", "Hello"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteThread_Header(t *testing.T) {
	mb := mailbox.New()
	root := domain.Email{ID: "t1", Timestamp: 1, From: "jürgen@example.com", Subject: "Über das Café"}
	reply := domain.Email{ID: "t2", Timestamp: 2, From: "zoë@example.com", Subject: "Re: Über das Café", ParentID: "t1"}
	mb.Add(&root)
	mb.Add(&reply)
	mb.MarkRead("t1")

	th, ok := mb.Thread("t2")
	if !ok {
		t.Fatal("Thread(t2) ok = false, want true")
	}
	var buf bytes.Buffer
	if err := writeThread(&buf, mb, &th); err != nil {
		t.Fatalf("writeThread() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Über das Café (2 messages, 1 unread)", "thread t1", "zoë@example.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !utf8.ValidString(out) {
		t.Errorf("output is not valid UTF-8:\n%s", out)
	}
}
