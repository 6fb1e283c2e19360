// Package store is the SQLite persistence layer: a key-value table for
// snapshots and profiles, and append-only attempt and LLM event logs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

// Open connects to the SQLite database at dsn, applies pragmas and
// migrates the schema. The parent directory of a file path is created.
func Open(dsn string) (*Store, error) {
	if path := filePath(dsn); path != "" {
		if err := EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps pragmas in effect for every statement.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq, now: time.Now}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns the attempt and LLM event log.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq, now: s.now}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempt_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			attempt_id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			challenge_id TEXT NOT NULL,
			challenge_type TEXT NOT NULL,
			topic TEXT NOT NULL,
			level TEXT NOT NULL,
			score REAL NOT NULL,
			passed INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			effective_level TEXT NOT NULL,
			trend TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_events_user ON attempt_events(user_id, sequence)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL,
			output_tokens INTEGER NOT NULL,
			latency_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGOLOOP_DB environment variable
// 2. $XDG_DATA_HOME/lingoloop/lingoloop.db
// 3. ~/.local/share/lingoloop/lingoloop.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGOLOOP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingoloop", "lingoloop.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// filePath returns the on-disk path of dsn, or "" for in-memory databases.
func filePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || strings.Contains(p, ":memory:") {
		return ""
	}
	return p
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
