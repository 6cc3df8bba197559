package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGetRoundTrip(t *testing.T) {
	c := New(zerolog.Nop())
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}
	c.Set(ctx, "k1", payload{Name: "民法"}, Options{Namespace: "law-detail"})

	var got payload
	require.True(t, c.Get(ctx, "k1", Options{Namespace: "law-detail"}, &got))
	assert.Equal(t, "民法", got.Name)

	// Same key under another namespace is a distinct entry.
	assert.False(t, c.Get(ctx, "k1", Options{Namespace: "law-search"}, &got))
}

func TestCacheExpiry(t *testing.T) {
	now := time.Now()
	clock := &now
	c := New(zerolog.Nop(), WithClock(func() time.Time { return *clock }))
	ctx := context.Background()

	c.Set(ctx, "k", "value", Options{TTL: 2 * time.Second})

	var got string
	require.True(t, c.Get(ctx, "k", Options{}, &got))

	later := now.Add(3 * time.Second)
	clock = &later
	assert.False(t, c.Get(ctx, "k", Options{}, &got), "stale entry must read as a miss")

	// The stale entry was evicted, not just skipped.
	clock = &now
	assert.False(t, c.Get(ctx, "k", Options{}, &got))
}

func TestCacheTTLFloor(t *testing.T) {
	now := time.Now()
	clock := &now
	c := New(zerolog.Nop(), WithClock(func() time.Time { return *clock }))
	ctx := context.Background()

	// A sub-second TTL is floored to one second.
	c.Set(ctx, "k", "value", Options{TTL: time.Millisecond})
	soon := now.Add(500 * time.Millisecond)
	clock = &soon
	var got string
	assert.True(t, c.Get(ctx, "k", Options{}, &got))
}

func TestCacheSessionTier(t *testing.T) {
	c := New(zerolog.Nop())
	ctx := context.Background()

	c.Set(ctx, "k", "v", Options{Strategy: StrategySession})

	var got string
	require.True(t, c.Get(ctx, "k", Options{Strategy: StrategySession}, &got))

	c.EndSession()
	// The session tier is gone but the memory mirror still answers.
	assert.True(t, c.Get(ctx, "k", Options{Strategy: StrategySession}, &got))

	c.Invalidate(ctx, "k", Options{Strategy: StrategySession})
	assert.False(t, c.Get(ctx, "k", Options{Strategy: StrategySession}, &got))
}

func TestCacheDurableSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	backend, err := OpenSqliteBackend(path)
	require.NoError(t, err)

	c := New(zerolog.Nop(), WithDurable(backend))
	ctx := context.Background()

	c.Set(ctx, "k", "durable", Options{Strategy: StrategyDurable})

	// A fresh cache over the same file sees the entry: it survived the
	// "restart".
	backend2, err := OpenSqliteBackend(path)
	require.NoError(t, err)
	c2 := New(zerolog.Nop(), WithDurable(backend2))

	var got string
	require.True(t, c2.Get(ctx, "k", Options{Strategy: StrategyDurable}, &got))
	assert.Equal(t, "durable", got)
}

func TestCacheDurableWithoutBackendDegradesToMemory(t *testing.T) {
	c := New(zerolog.Nop())
	ctx := context.Background()

	c.Set(ctx, "k", "v", Options{Strategy: StrategyDurable})
	var got string
	assert.True(t, c.Get(ctx, "k", Options{Strategy: StrategyDurable}, &got))
}

// failingBackend errors on every call.
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("boom")
}
func (failingBackend) Set(context.Context, string, []byte, int64) error {
	return errors.New("boom")
}
func (failingBackend) Delete(context.Context, string) error { return errors.New("boom") }

func TestCacheTierFailureNeverPropagates(t *testing.T) {
	c := New(zerolog.Nop(), WithDurable(failingBackend{}))
	ctx := context.Background()

	// The durable write fails silently; the memory mirror still works.
	c.Set(ctx, "k", "v", Options{Strategy: StrategyDurable})
	var got string
	assert.True(t, c.Get(ctx, "k", Options{Strategy: StrategyDurable}, &got))
	assert.Equal(t, "v", got)
}
