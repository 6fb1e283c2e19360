package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/abhisek/lingoloop/internal/kv"
)

// KV returns a kv.Store backed by the kv table.
func (s *Store) KV() kv.Store {
	return &kvTable{db: s.db, store: s}
}

type kvTable struct {
	db    *sql.DB
	store *Store
}

func (t *kvTable) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := t.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (t *kvTable) Set(ctx context.Context, key, value string) error {
	_, err := t.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, formatTime(t.store.now()))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (t *kvTable) Remove(ctx context.Context, key string) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
