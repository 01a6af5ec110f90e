// Package goshardcache provides a fixed-capacity, in-process key/value cache
// with strict least-recently-used eviction, an optional uniform time-to-live,
// and safe concurrent access through lock sharding.
//
// The keyspace is partitioned across independently locked shards; a key is
// routed to its shard by hash, so goroutines operating on keys in different
// shards never block each other and no operation ever holds more than one
// shard lock. Expiry is lazy: an expired entry is detected and reaped when it
// is next touched, never by a background sweeper.
package goshardcache

import (
	"errors"
	"fmt"
	"hash/maphash"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidConfig is returned by [New] when the requested capacity, shard
// count or TTL is not usable. It is the only error the package produces;
// misses, evictions and expiries are ordinary return values.
var ErrInvalidConfig = errors.New("goshardcache: invalid configuration")

// Cache is a sharded LRU cache. All methods are safe for concurrent use by
// multiple goroutines.
//
// Typical complexity is O(1): a map lookup plus constant-time list
// adjustments under a single shard lock.
type Cache[K comparable, V any] struct {
	shards   []*shard[K, V]
	seed     maphash.Seed
	capacity int

	loadMu sync.Mutex
	loads  map[K]*call[V]

	stats *counters
}

// New creates a Cache holding at most capacity entries. Capacity is divided
// across the shards as ceil(capacity/shards) with a floor of one entry per
// shard, so the realized aggregate capacity can slightly exceed the requested
// total when it does not divide evenly.
//
// New fails with [ErrInvalidConfig] when capacity or the shard count is not
// positive, or when a supplied TTL is not positive; no cache is constructed
// in that case.
func New[K comparable, V any](capacity int, opts ...Option) (*Cache[K, V], error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, capacity)
	}
	if cfg.shards < 1 {
		return nil, fmt.Errorf("%w: shard count must be positive, got %d", ErrInvalidConfig, cfg.shards)
	}
	if cfg.ttlSet && cfg.ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl must be positive, got %v", ErrInvalidConfig, cfg.ttl)
	}

	stats := &counters{}
	shardCap := (capacity + cfg.shards - 1) / cfg.shards
	shards := make([]*shard[K, V], cfg.shards)
	for i := range shards {
		shards[i] = newShard[K, V](shardCap, cfg.ttl, stats)
	}

	return &Cache[K, V]{
		shards:   shards,
		seed:     maphash.MakeSeed(),
		capacity: capacity,
		loads:    make(map[K]*call[V]),
		stats:    stats,
	}, nil
}

// Get returns the value stored under key and whether it was present. A hit
// promotes the entry to most recently used; an expired entry is reaped and
// reported as a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.route(key).get(key)
}

// Put inserts or updates key, refreshing its TTL deadline and marking it most
// recently used. If the owning shard is full its least recently used entry is
// silently evicted.
func (c *Cache[K, V]) Put(key K, val V) {
	c.route(key).put(key, val)
}

// Remove deletes key and returns the value it held, or the zero value and
// false when the key was absent (or already expired). Removing an absent key
// is a no-op, so calling Remove twice is harmless.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	return c.route(key).remove(key)
}

// Contains reports whether key holds a live entry without promoting it.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.route(key).contains(key)
}

// Len returns the number of live entries across all shards. Each shard is
// counted under its own lock; the total is therefore approximate under
// concurrent writes, and never more than the realized aggregate capacity.
func (c *Cache[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.size()
	}
	return n
}

// Clear removes every entry, one shard at a time.
func (c *Cache[K, V]) Clear() {
	for _, s := range c.shards {
		s.clear()
	}
}

// Capacity returns the capacity the cache was constructed with.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Shards returns the number of shards the keyspace is partitioned into.
func (c *Cache[K, V]) Shards() int {
	return len(c.shards)
}

// route maps key to its owning shard. The assignment is a pure function of
// the key's hash and never changes for the lifetime of the cache.
func (c *Cache[K, V]) route(key K) *shard[K, V] {
	return c.shards[c.hashKey(key)%uint64(len(c.shards))]
}

// hashKey maps key to a stable 64-bit hash. String keys take the xxhash fast
// path; every other comparable type goes through maphash with a per-cache
// seed. Both are stable within one cache instance, which is all shard routing
// requires.
func (c *Cache[K, V]) hashKey(key K) uint64 {
	if s, ok := any(key).(string); ok {
		return xxhash.Sum64String(s)
	}
	return maphash.Comparable(c.seed, key)
}
