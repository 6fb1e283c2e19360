// Package kv defines the string key-value persistence contract the
// performance and profile layers write through, plus memory and Redis
// implementations. The SQLite implementation lives in internal/store.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store. Every Set is a full overwrite.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
