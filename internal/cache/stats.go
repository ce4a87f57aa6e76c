package cache

import "go.uber.org/atomic"

// Stats is a point-in-time view of cache counters.
//
//	hit_ratio = Hits / (Hits + Misses)
type Stats struct {
	Hits              uint64
	Misses            uint64
	CapacityEvictions uint64
	SweepEvictions    uint64
	Sweeps            uint64
}

type counters struct {
	hits              atomic.Uint64
	misses            atomic.Uint64
	capacityEvictions atomic.Uint64
	sweepEvictions    atomic.Uint64
	sweeps            atomic.Uint64
}

// Stats returns the counters accumulated since the cache was created.
// Explicit Delete, Pop and Clear are not counted as evictions.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:              c.stats.hits.Load(),
		Misses:            c.stats.misses.Load(),
		CapacityEvictions: c.stats.capacityEvictions.Load(),
		SweepEvictions:    c.stats.sweepEvictions.Load(),
		Sweeps:            c.stats.sweeps.Load(),
	}
}
