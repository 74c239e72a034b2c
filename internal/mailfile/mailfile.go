// Package mailfile reads and writes mailbox description files and loads
// them into a mailbox.MailBox. TOML, YAML, JSON and SQLite are supported,
// chosen by file extension.
package mailfile

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions other than .toml,
// .yaml, .yml, .json, .db and .sqlite.
var ErrUnsupportedFormat = errors.New("unsupported mailbox file format")

// File is the on-disk form of a mailbox.
type File struct {
	Messages []Entry `toml:"message" yaml:"messages" json:"messages"`
}

// Entry is one message in a mailbox file.
type Entry struct {
	ID        string `toml:"id" yaml:"id" json:"id"`
	Timestamp int64  `toml:"timestamp" yaml:"timestamp" json:"timestamp"`
	From      string `toml:"from,omitempty" yaml:"from,omitempty" json:"from,omitempty"`
	To        string `toml:"to,omitempty" yaml:"to,omitempty" json:"to,omitempty"`
	Subject   string `toml:"subject,omitempty" yaml:"subject,omitempty" json:"subject,omitempty"`
	Body      string `toml:"body,omitempty" yaml:"body,omitempty" json:"body,omitempty"`
	Parent    string `toml:"parent,omitempty" yaml:"parent,omitempty" json:"parent,omitempty"`
	Read      bool   `toml:"read,omitempty" yaml:"read,omitempty" json:"read,omitempty"`
}

type format int

const (
	formatTOML format = iota
	formatYAML
	formatJSON
	formatSQLite
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	case ".db", ".sqlite":
		return formatSQLite, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and decodes the mailbox file at path.
func Load(path string) (*File, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if f == formatSQLite {
		return loadDB(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mailbox file: %w", err)
	}
	file, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mailbox file %s: %w", path, err)
	}
	return file, nil
}

func decode(data []byte, f format) (*File, error) {
	var file File
	switch f {
	case formatTOML:
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	case formatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, err
		}
	}
	return &file, nil
}

func encode(file *File, f format) ([]byte, error) {
	switch f {
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(file); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatYAML:
		return yaml.Marshal(file)
	default:
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Save encodes file in the format implied by the extension of path and
// replaces path with it.
func Save(path string, file *File) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if f == formatSQLite {
		if err := saveDB(path, file); err != nil {
			return fmt.Errorf("failed to write mailbox file: %w", err)
		}
		return nil
	}
	data, err := encode(file, f)
	if err != nil {
		return fmt.Errorf("failed to encode mailbox file: %w", err)
	}
	if err := writeFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write mailbox file: %w", err)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(path), time.Now().UnixNano()))
	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()
	if _, err = file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// sortEntries orders entries oldest first, then by ID, so saved files diff
// cleanly.
func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Timestamp, b.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
