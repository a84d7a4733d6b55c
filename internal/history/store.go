package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/neural/internal"
	"codeberg.org/snonux/neural/internal/language"
)

// DefaultFile is the database file name inside the state directory
const DefaultFile = "history.db"

// Entry is a single translation
type Entry struct {
	ID         int64
	Text       string
	Translated string
	From       language.Language
	To         language.Language
	Provider   string
	CreatedAt  time.Time
}

// Store appends and lists translations
type Store struct {
	db *sql.DB
}

// DefaultPath returns ~/.local/state/neural/history.db
func DefaultPath() string {
	return filepath.Join(internal.StateDir(), DefaultFile)
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// Translations arrive from several goroutines
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createTables() error {
	queries := []string{
		`PRAGMA journal_mode = WAL`,
		`CREATE TABLE IF NOT EXISTS translations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL,
			translated TEXT NOT NULL,
			source_lang TEXT NOT NULL,
			target_lang TEXT NOT NULL,
			provider TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS ix_translations_created ON translations (created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create history schema: %w", err)
		}
	}
	return nil
}

// Append stores an entry. A zero CreatedAt is set to now.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO translations (text, translated, source_lang, target_lang, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Text, entry.Translated, string(entry.From), string(entry.To),
		entry.Provider, entry.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, translated, source_lang, target_lang, provider, created_at
		FROM translations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			from, to string
			created  int64
		)
		if err := rows.Scan(&e.ID, &e.Text, &e.Translated, &from, &to, &e.Provider, &created); err != nil {
			return nil, fmt.Errorf("failed to read history entry: %w", err)
		}
		e.From = language.Language(from)
		e.To = language.Language(to)
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Count returns the number of stored entries
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
