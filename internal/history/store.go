package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	method      TEXT NOT NULL,
	model       TEXT NOT NULL,
	format      TEXT NOT NULL,
	timestamps  INTEGER NOT NULL,
	text        TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	size_bytes  INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_created_at
	ON transcriptions (created_at DESC);
`

// Store provides read-write access to the transcription history database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".audiotranscriber", "history.sqlite")
}

// Open opens the database with WAL and creates the schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one finished transcription, assigning an ID and
// creation time when the caller left them empty.
func (s *Store) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	ts := 0
	if e.Timestamps {
		ts = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO transcriptions
			(id, filename, method, model, format, timestamps, text, duration_ms, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Filename, e.Method, e.Model, e.Format, ts, e.Text, e.DurationMS, e.SizeBytes, e.CreatedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("insert transcription: %w", err)
	}

	return e, nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT id, filename, method, model, format, timestamps, text, duration_ms, size_bytes, created_at
		FROM transcriptions
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Filename, &e.Method, &e.Model, &e.Format,
			&ts, &e.Text, &e.DurationMS, &e.SizeBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transcription: %w", err)
		}
		e.Timestamps = ts != 0
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
