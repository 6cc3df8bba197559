// Package store provides the persistent key-value store used by the
// interactive features for history and settings. Values are JSON. When
// the durable file cannot be opened the store degrades to an in-memory
// map so callers never have to handle storage failures.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Store is a string-keyed, JSON-valued store.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
}

// memoryStore is the in-process fallback.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns a volatile store.
func NewMemory() Store {
	return &memoryStore{entries: make(map[string][]byte)}
}

// Open returns a sqlite-backed store at path, falling back to an
// in-memory store when the file cannot be opened. The fallback is
// logged once and otherwise invisible to callers.
func Open(path string, log zerolog.Logger) Store {
	s, err := openSqlite(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("durable store unavailable; using in-memory fallback")
		return NewMemory()
	}
	return s
}
