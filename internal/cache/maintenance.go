package cache

import (
	"math"
	"time"

	"go.uber.org/zap"
)

const (
	reasonCapacity = "capacity"
	reasonSweep    = "sweep"

	// anyUsage is the capacity eviction threshold: every entry qualifies.
	anyUsage = math.MaxInt
)

// Purge runs the sweep check immediately, with the same rules as the check
// Get and Set perform inline: nothing happens before the sweep deadline or
// when MaxAge is disabled. Callers without steady traffic can drive it from
// their own loop.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked(c.clock.Now())
}

// purgeLocked is the opportunistic sweep.
//
// It only removes an entry whose usage is already 0, i.e. one that has not
// been read or written since the previous sweep reset the counters.
//
// Why reset usage instead of deleting old entries?
//   - Entries store no expiry deadline; "stale" means "unread for a whole
//     interval", which the zeroed counter records until the next sweep
//   - Entries read since the reset earn usage > 0 and survive, so hot keys
//     are never aged out regardless of when they were written
//   - The cost is a lag: an unread entry is removed one sweep later than a
//     timestamp check would remove it
func (c *Cache[K, V]) purgeLocked(now time.Time) {
	if c.maxAge <= 0 || now.Before(c.nextSweep) {
		return
	}

	c.evictLeastUsedLocked(0, reasonSweep)

	c.nextSweep = now.Add(c.poolTime)
	for _, e := range c.items {
		e.usage = 0
	}
	c.stats.sweeps.Inc()

	c.log.Debug("cache sweep",
		zap.Int("entries", len(c.items)),
		zap.Time("next_sweep", c.nextSweep),
	)
}

// evictLeastUsedLocked removes at most one entry: the one with the lowest
// usage, oldest insertion first on ties. Nothing is removed when the cache
// is empty or the lowest usage exceeds threshold.
//
// This is an O(n) scan over the map. Usage changes on every Get, so keeping
// a heap or frequency lists ordered would move work onto the read path;
// eviction runs at most twice per Set, and a scan keeps Get O(1).
func (c *Cache[K, V]) evictLeastUsedLocked(threshold int, reason string) bool {
	var (
		victim K
		least  *entry[V]
	)
	for k, e := range c.items {
		if least == nil || e.usage < least.usage || (e.usage == least.usage && e.seq < least.seq) {
			victim, least = k, e
		}
	}
	if least == nil || least.usage > threshold {
		return false
	}

	delete(c.items, victim)
	if reason == reasonCapacity {
		c.stats.capacityEvictions.Inc()
	} else {
		c.stats.sweepEvictions.Inc()
	}

	c.log.Debug("cache eviction",
		zap.Any("key", victim),
		zap.Int("usage", least.usage),
		zap.String("reason", reason),
	)
	return true
}
