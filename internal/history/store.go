// ============================================================================
// mCalc - Interaktiver Ganzzahl-Rechner
// ============================================================================
//
// Package:     history
// Description: SQLite log of evaluated lines and their outcomes
// Author:      Mike Stoffels
// Created:     2026-10-15
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	"github.com/msto63/mcalc/pkg/core/config"
)

// Entry is one evaluated line. An empty Error means the line succeeded
// with Result.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Input     string    `json:"input"`
	Result    int64     `json:"result"`
	Error     string    `json:"error,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Failed reports whether the line produced an error
func (e *Entry) Failed() bool {
	return e.Error != ""
}

// Store defines the interface for history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	BySession(ctx context.Context, sessionID string) ([]*Entry, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// Open returns the store selected by cfg: SQLite when history is enabled,
// a no-op store otherwise.
func Open(cfg config.HistoryConfig) (Store, error) {
	if !cfg.Enabled {
		return NopStore{}, nil
	}
	return NewSQLiteStore(SQLiteConfig{
		Path:        cfg.Path,
		BusyTimeout: cfg.BusyTimeout.Duration,
	})
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path:        "./data/history.db",
		BusyTimeout: 5 * time.Second,
	}
}

// NewSQLiteStore creates a new SQLite-based history store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "failed to create directory").WithDetail("path", dir)
	}

	// Open database with WAL mode
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, dbError(err, "failed to open database").WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize schema").WithDetail("path", cfg.Path)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		input TEXT NOT NULL,
		result INTEGER NOT NULL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores an entry and fills in its ID
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.SessionID == "" {
		return mdwerror.New("session ID is required").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("history.Record")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO history (session_id, input, result, error, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.SessionID, entry.Input, entry.Result, entry.Error, entry.Kind, entry.CreatedAt)
	if err != nil {
		return dbError(err, "failed to record entry").WithOperation("history.Record")
	}

	entry.ID, _ = result.LastInsertId()
	return nil
}

// Recent returns the last limit entries across all sessions, oldest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, input, result, error, kind, created_at
		FROM history
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, dbError(err, "failed to list entries").WithOperation("history.Recent")
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	// Reverse the DESC order
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// BySession returns all entries of one session, oldest first
func (s *SQLiteStore) BySession(ctx context.Context, sessionID string) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, input, result, error, kind, created_at
		FROM history
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, dbError(err, "failed to list session entries").
			WithOperation("history.BySession").
			WithDetail("session_id", sessionID)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Clear deletes all entries and returns how many were removed
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, dbError(err, "failed to clear history").WithOperation("history.Clear")
	}

	n, _ := result.RowsAffected()
	return n, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Input, &e.Result, &e.Error, &e.Kind, &e.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan entry")
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read entries")
	}
	return entries, nil
}

func dbError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeDatabaseError)
}

// NopStore discards entries. It backs disabled history.
type NopStore struct{}

// Record does nothing
func (NopStore) Record(ctx context.Context, entry *Entry) error { return nil }

// Recent returns no entries
func (NopStore) Recent(ctx context.Context, limit int) ([]*Entry, error) { return nil, nil }

// BySession returns no entries
func (NopStore) BySession(ctx context.Context, sessionID string) ([]*Entry, error) { return nil, nil }

// Clear removes nothing
func (NopStore) Clear(ctx context.Context) (int64, error) { return 0, nil }

// Close does nothing
func (NopStore) Close() error { return nil }
