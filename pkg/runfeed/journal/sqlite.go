package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists failure records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite failure journal.
// The path should be a file path (e.g., "./failures.db") or ":memory:"
// for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS listener_failures (
			id TEXT PRIMARY KEY,
			listener TEXT NOT NULL,
			method TEXT NOT NULL,
			message TEXT NOT NULL,
			details TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			sequence INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listener_failures_listener
		ON listener_failures(listener)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Record implements Store.
func (s *SQLiteStore) Record(ctx context.Context, f *Failure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO listener_failures (id, listener, method, message, details, occurred_at, sequence)
		VALUES (
			?, ?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(sequence) FROM listener_failures), 0) + 1
		)
	`, f.ID, f.Listener, f.Method, f.Message, f.Details,
		f.OccurredAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, listener string) ([]*Failure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	query := `
		SELECT id, listener, method, message, details, occurred_at
		FROM listener_failures
	`
	args := []any{}
	if listener != "" {
		query += " WHERE listener = ?"
		args = append(args, listener)
	}
	query += " ORDER BY sequence"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer rows.Close()

	var failures []*Failure
	for rows.Next() {
		var f Failure
		var occurredAt string
		if err := rows.Scan(&f.ID, &f.Listener, &f.Method, &f.Message, &f.Details, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		f.OccurredAt, _ = time.Parse(time.RFC3339Nano, occurredAt)
		failures = append(failures, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}

	return failures, nil
}

// Count implements Store.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM listener_failures
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failures: %w", err)
	}
	return count, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
