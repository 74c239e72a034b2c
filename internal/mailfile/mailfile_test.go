package mailfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleFile() *File {
	return &File{Messages: []Entry{
		{ID: "m1", Timestamp: 1, From: "alice@example.com", To: "bob@example.com", Subject: "Hello", Body: "Hi Bob"},
		{ID: "m2", Timestamp: 2, From: "bob@example.com", To: "alice@example.com", Subject: "Re: Hello", Body: "Hi", Parent: "m1", Read: true},
	}}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".yml", ".json", ".db"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mailbox"+ext)
			if err := Save(path, sampleFile()); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			want := sampleFile()
			if len(got.Messages) != len(want.Messages) {
				t.Fatalf("len(Messages) = %d, want %d", len(got.Messages), len(want.Messages))
			}
			for i := range want.Messages {
				if got.Messages[i] != want.Messages[i] {
					t.Errorf("Messages[%d] = %+v, want %+v", i, got.Messages[i], want.Messages[i])
				}
			}
		})
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mailbox.toml")
	if err := Save(path, sampleFile()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "mailbox.toml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want [mailbox.toml]", names)
	}
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "mailbox.toml", `
[[message]]
id = "m1"
timestamp = 1
subject = "Hello"

[[message]]
id = "m2"
timestamp = 2
parent = "m1"
read = true
`},
		{"yaml", "mailbox.yaml", `
messages:
  - id: m1
    timestamp: 1
    subject: Hello
  - id: m2
    timestamp: 2
    parent: m1
    read: true
`},
		{"json", "mailbox.json", `{"messages": [
  {"id": "m1", "timestamp": 1, "subject": "Hello"},
  {"id": "m2", "timestamp": 2, "parent": "m1", "read": true}
]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if len(got.Messages) != 2 {
				t.Fatalf("len(Messages) = %d, want 2", len(got.Messages))
			}
			if got.Messages[0].Subject != "Hello" {
				t.Errorf("Subject = %q, want %q", got.Messages[0].Subject, "Hello")
			}
			if got.Messages[1].Parent != "m1" || !got.Messages[1].Read {
				t.Errorf("Messages[1] = %+v, want parent m1 and read", got.Messages[1])
			}
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("/tmp/mailbox.txt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
	if err := Save("/tmp/mailbox.txt", sampleFile()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Fatal("Load() of missing file returned no error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailbox.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() returned no error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "failed to parse mailbox file") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "failed to parse mailbox file")
	}
}
