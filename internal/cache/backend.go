package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Backend is one storage tier. Implementations may fail; the cache wraps
// every backend so that failures degrade to a miss or a skipped write
// instead of propagating.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, entry []byte, expiresAt int64) error
	Delete(ctx context.Context, key string) error
}

// memoryBackend is the always-available process-local tier.
type memoryBackend struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{entries: make(map[string][]byte)}
}

func (m *memoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok, nil
}

func (m *memoryBackend) Set(_ context.Context, key string, entry []byte, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *memoryBackend) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
}

// sessionBackend scopes entries to the current logical session; Reset
// discards everything at once when the session ends.
type sessionBackend struct {
	memoryBackend
}

func newSessionBackend() *sessionBackend {
	return &sessionBackend{memoryBackend{entries: make(map[string][]byte)}}
}

// safeBackend wraps a fallible backend so reads degrade to misses and
// writes are skipped, with a warn log either way.
type safeBackend struct {
	inner Backend
	tier  string
	log   zerolog.Logger
}

func (s *safeBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok, err := s.inner.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("tier", s.tier).Str("key", key).Msg("cache read failed")
		return nil, false, nil
	}
	return entry, ok, nil
}

func (s *safeBackend) Set(ctx context.Context, key string, entry []byte, expiresAt int64) error {
	if err := s.inner.Set(ctx, key, entry, expiresAt); err != nil {
		s.log.Warn().Err(err).Str("tier", s.tier).Str("key", key).Msg("cache write failed")
	}
	return nil
}

func (s *safeBackend) Delete(ctx context.Context, key string) error {
	if err := s.inner.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("tier", s.tier).Str("key", key).Msg("cache delete failed")
	}
	return nil
}
