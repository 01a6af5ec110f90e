package goshardcache

import "sync/atomic"

// Stats is a point-in-time snapshot of the cache's operation counters.
//
// Hits and Misses count Get outcomes (an expired entry counts as a miss).
// Evictions counts entries removed by capacity pressure, Expirations entries
// reaped after their TTL elapsed. The hit ratio is Hits / (Hits + Misses).
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}

// counters holds the live atomic counters shared by every shard. Keeping
// them atomic means Stats never takes a shard lock.
type counters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
}

// Stats returns a snapshot of the cache's counters since construction.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Evictions:   c.stats.evictions.Load(),
		Expirations: c.stats.expirations.Load(),
	}
}
