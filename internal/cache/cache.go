package cache

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config controls cache capacity and expiry behavior.
//
// Defaults:
//   - MaxEntries <= 0 means "unbounded" (no capacity eviction)
//   - MaxAge <= 0 means entries never age out (no sweeps)
//   - PoolTime == 0 means "sweep every MaxAge"
//
// PoolTime is the sweep interval, not a per-entry TTL. Sweeps piggyback on
// whichever Get/Set crosses the deadline; the cache starts no goroutines.
type Config struct {
	MaxEntries int
	MaxAge     time.Duration
	PoolTime   time.Duration
}

// ErrInvalidConfig is returned by New and Config.Validate for contradictory settings.
var ErrInvalidConfig = errors.New("invalid cache config")

// Validate reports whether cfg describes a usable policy.
func (cfg Config) Validate() error {
	switch {
	case cfg.MaxEntries < 0 && cfg.MaxAge > 0:
		return fmt.Errorf("%w: negative max entries %d with max age %s", ErrInvalidConfig, cfg.MaxEntries, cfg.MaxAge)
	case cfg.PoolTime < 0:
		return fmt.Errorf("%w: negative pool time %s", ErrInvalidConfig, cfg.PoolTime)
	case cfg.PoolTime > 0 && cfg.MaxAge <= 0:
		return fmt.Errorf("%w: pool time %s set without max age", ErrInvalidConfig, cfg.PoolTime)
	}
	return nil
}

// Cache is a concurrency-safe, bounded, self-expiring key/value cache.
//
// Every entry carries a usage counter: Set resets it to 1 and every
// successful Get increments it. Two triggers remove entries:
//   - capacity: inserting a new key into a full cache evicts the entry
//     with the lowest usage
//   - sweep: once per PoolTime, the next Get/Set evicts the lowest-usage
//     entry if its usage is 0, then resets every usage to 0
//
// An entry that is not read across two consecutive sweeps is therefore
// removed by the second one. Ties on usage go to the oldest insertion.
//
// A single mutex serializes all operations, reads included, since reads
// mutate usage and may sweep.
type Cache[K comparable, V any] struct {
	mu sync.RWMutex

	maxEntries int
	maxAge     time.Duration
	poolTime   time.Duration
	nextSweep  time.Time

	items map[K]*entry[V]
	seq   uint64 // insertion counter, orders ties and snapshots

	clock Clock
	log   *zap.Logger
	stats counters
}

// entry is the value stored in the items map.
type entry[V any] struct {
	value     V
	createdAt time.Time
	usage     int
	seq       uint64
}

// New constructs a cache with a fixed policy.
func New[K comparable, V any](cfg Config, opts ...Option) (*Cache[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		return nil, fmt.Errorf("%w: nil clock", ErrInvalidConfig)
	}
	if o.logger == nil {
		return nil, fmt.Errorf("%w: nil logger", ErrInvalidConfig)
	}

	poolTime := cfg.PoolTime
	if poolTime == 0 {
		poolTime = cfg.MaxAge
	}

	c := &Cache[K, V]{
		maxEntries: cfg.MaxEntries,
		maxAge:     cfg.MaxAge,
		poolTime:   poolTime,
		items:      make(map[K]*entry[V]),
		clock:      o.clock,
		log:        o.logger,
	}
	if c.maxAge > 0 {
		c.nextSweep = c.clock.Now().Add(c.poolTime)
	}
	return c, nil
}

// Get reads a key and counts the read as a use.
//
// The value is captured before the sweep check runs, so a key removed by
// the sweep this call triggered is still returned once.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, _, ok := c.getLocked(key, c.clock.Now())
	return v, ok
}

// GetWithAge is Get that also reports how long ago the entry was written.
func (c *Cache[K, V]) GetWithAge(key K) (V, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getLocked(key, c.clock.Now())
}

// Set writes/overwrites a key and resets its usage to 1.
//
// Overwriting an existing key never triggers capacity eviction.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(key, value, c.clock.Now())
}

// Update sets every pair through the Set path, one at a time, in the order
// entries yields them. That order is the insertion order used to break
// usage ties, so pass slices.All or another ordered sequence when eviction
// order matters; maps.All gives random order.
func (c *Cache[K, V]) Update(entries iter.Seq2[K, V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range entries {
		c.setLocked(k, v, c.clock.Now())
	}
}

// SetDefault returns the value for key if present (counting it as a read),
// otherwise stores value and returns it.
func (c *Cache[K, V]) SetDefault(key K, value V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if v, _, ok := c.getLocked(key, now); ok {
		return v
	}
	c.setLocked(key, value, now)
	return value
}

// Delete removes a key if present. It never sweeps.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Pop removes a key and returns its value. It neither counts as a read nor sweeps.
func (c *Cache[K, V]) Pop(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.items, key)
	return e.value, true
}

// Contains reports whether key is stored, without counting a read.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.items[key]
	return ok
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.items)
}

// Len returns the number of stored entries. It never sweeps.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache[K, V]) getLocked(key K, now time.Time) (V, time.Duration, bool) {
	e, ok := c.items[key]
	if !ok {
		c.stats.misses.Inc()
		var zero V
		return zero, 0, false
	}
	c.stats.hits.Inc()

	e.usage++
	value, age := e.value, now.Sub(e.createdAt)
	c.purgeLocked(now)
	return value, age, true
}

func (c *Cache[K, V]) setLocked(key K, value V, now time.Time) {
	if _, exists := c.items[key]; !exists && c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.evictLeastUsedLocked(anyUsage, reasonCapacity)
	}
	c.purgeLocked(now)

	c.seq++
	c.items[key] = &entry[V]{
		value:     value,
		createdAt: now,
		usage:     1,
		seq:       c.seq,
	}
}
