// Package cache provides the tiered TTL cache in front of the upstream
// law API. Three named tiers exist: memory (process-local), session
// (cleared when the logical session ends) and durable (sqlite, survives
// restarts). Tier failures never propagate; a failed read is a miss and
// a failed write is skipped. Every write is mirrored into the memory
// tier so the fastest tier stays consistent.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Strategy names a storage tier.
type Strategy string

const (
	StrategyMemory  Strategy = "memory"
	StrategySession Strategy = "session"
	StrategyDurable Strategy = "durable"
)

const (
	DefaultNamespace = "global"
	// DefaultTTL applies when the caller passes no TTL.
	DefaultTTL = 5 * time.Minute
	// minTTL is the floor applied to every write.
	minTTL = time.Second
)

// Options scope one get/set call.
type Options struct {
	Namespace string
	Strategy  Strategy
	TTL       time.Duration
}

type entry struct {
	Value     json.RawMessage `json:"value"`
	ExpiresAt int64           `json:"expiresAt"`
}

// Cache is an explicitly constructed, injectable tier stack. Create one
// at process start and share it; tests construct isolated instances.
type Cache struct {
	memory  *memoryBackend
	session *sessionBackend
	durable Backend
	log     zerolog.Logger
	now     func() time.Time
}

// Option tunes cache construction.
type Option func(*Cache)

// WithDurable attaches a durable backend (sqlite). Without it the
// durable strategy silently degrades to the memory tier.
func WithDurable(b Backend) Option {
	return func(c *Cache) {
		if b != nil {
			c.durable = &safeBackend{inner: b, tier: string(StrategyDurable), log: c.log}
		}
	}
}

// WithClock overrides the time source for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New constructs a cache with the memory and session tiers always
// available.
func New(log zerolog.Logger, opts ...Option) *Cache {
	c := &Cache{
		memory:  newMemoryBackend(),
		session: newSessionBackend(),
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get reads key from the requested tier into dest. A stale entry is
// evicted and treated as a miss. The memory tier is always consulted as
// the last resort. Returns false on a miss.
func (c *Cache) Get(ctx context.Context, key string, opts Options, dest any) bool {
	composed := composeKey(opts.Namespace, key)

	for _, tier := range c.readOrder(opts.Strategy) {
		raw, ok, _ := tier.Get(ctx, composed)
		if !ok {
			continue
		}
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			_ = tier.Delete(ctx, composed)
			continue
		}
		if e.ExpiresAt < c.now().UnixMilli() {
			_ = tier.Delete(ctx, composed)
			continue
		}
		if err := json.Unmarshal(e.Value, dest); err != nil {
			c.log.Warn().Err(err).Str("key", composed).Msg("cached value does not decode into destination")
			return false
		}
		return true
	}
	return false
}

// Set writes key to the requested tier and mirrors into the memory tier.
// The TTL is floored at one second.
func (c *Cache) Set(ctx context.Context, key string, value any, opts Options) {
	composed := composeKey(opts.Namespace, key)

	payload, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", composed).Msg("cache value does not marshal; skipping write")
		return
	}
	expiresAt := c.now().Add(resolveTTL(opts.TTL)).UnixMilli()
	raw, err := json.Marshal(entry{Value: payload, ExpiresAt: expiresAt})
	if err != nil {
		return
	}

	switch opts.Strategy {
	case StrategySession:
		_ = c.session.Set(ctx, composed, raw, expiresAt)
	case StrategyDurable:
		if c.durable != nil {
			_ = c.durable.Set(ctx, composed, raw, expiresAt)
		}
	}
	_ = c.memory.Set(ctx, composed, raw, expiresAt)
}

// Invalidate removes key from every tier.
func (c *Cache) Invalidate(ctx context.Context, key string, opts Options) {
	composed := composeKey(opts.Namespace, key)
	_ = c.memory.Delete(ctx, composed)
	_ = c.session.Delete(ctx, composed)
	if c.durable != nil {
		_ = c.durable.Delete(ctx, composed)
	}
}

// EndSession clears the session tier.
func (c *Cache) EndSession() {
	c.session.Clear()
}

func (c *Cache) readOrder(strategy Strategy) []Backend {
	switch strategy {
	case StrategySession:
		return []Backend{c.session, c.memory}
	case StrategyDurable:
		if c.durable != nil {
			return []Backend{c.durable, c.memory}
		}
		return []Backend{c.memory}
	default:
		return []Backend{c.memory}
	}
}

func composeKey(namespace, key string) string {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":" + key
}

func resolveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ttl < minTTL {
		ttl = minTTL
	}
	return ttl
}
