package mailfile

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
    id          TEXT PRIMARY KEY,
    timestamp   INTEGER NOT NULL,
    from_addr   TEXT NOT NULL DEFAULT '',
    to_addr     TEXT NOT NULL DEFAULT '',
    subject     TEXT NOT NULL DEFAULT '',
    body        TEXT NOT NULL DEFAULT '',
    parent_id   TEXT NOT NULL DEFAULT '',
    is_read     BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_messages_parent ON messages(parent_id);
`

// DB is a mailbox kept in a SQLite database.
type DB struct {
	db *sql.DB
}

// OpenDB opens the SQLite database at dsn and creates the schema if needed.
// Use ":memory:" for an in-memory database.
func OpenDB(dsn string) (*DB, error) {
	connStr := dsn + "?_journal_mode=WAL"
	if dsn == ":memory:" {
		connStr = dsn
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &DB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

func (s *DB) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// Entries returns every stored message, oldest first.
func (s *DB) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, from_addr, to_addr, subject, body, parent_id, is_read
		FROM messages ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.From, &e.To, &e.Subject, &e.Body, &e.Parent, &e.Read); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return entries, nil
}

// ReplaceEntries replaces every stored message with entries in a single
// transaction. Entries sharing an ID keep the last one.
func (s *DB) ReplaceEntries(ctx context.Context, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	for _, e := range entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO messages (id, timestamp, from_addr, to_addr, subject, body, parent_id, is_read)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				timestamp = excluded.timestamp,
				from_addr = excluded.from_addr,
				to_addr   = excluded.to_addr,
				subject   = excluded.subject,
				body      = excluded.body,
				parent_id = excluded.parent_id,
				is_read   = excluded.is_read`,
			e.ID, e.Timestamp, e.From, e.To, e.Subject, e.Body, e.Parent, e.Read,
		)
		if err != nil {
			return fmt.Errorf("failed to insert message %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit messages: %w", err)
	}
	return nil
}

func loadDB(path string) (*File, error) {
	// Opening a missing database would create it.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read mailbox file: %w", err)
	}
	db, err := OpenDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mailbox database %s: %w", path, err)
	}
	defer db.Close()

	entries, err := db.Entries(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read mailbox database %s: %w", path, err)
	}
	return &File{Messages: entries}, nil
}

func saveDB(path string, file *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	db, err := OpenDB(path)
	if err != nil {
		return err
	}
	if err := db.ReplaceEntries(context.Background(), file.Messages); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}
