package goshardcache

import (
	"sync"
	"time"
)

// shard is one independently locked partition of the cache. It owns a hash
// map from key to entry, a recency list over the same entries, and a slice of
// the cache's total capacity.
//
// Every exported-equivalent operation takes the shard lock once and then
// calls only lock-free helpers, so a plain sync.Mutex suffices and
// re-entrancy never comes up.
type shard[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*entry[K, V]
	order    recencyList[K, V]
	capacity int
	ttl      time.Duration // zero means entries never expire

	// now is the shard's clock. Tests pin it for deterministic expiry.
	now func() time.Time

	stats *counters
}

func newShard[K comparable, V any](capacity int, ttl time.Duration, stats *counters) *shard[K, V] {
	s := &shard[K, V]{
		entries:  make(map[K]*entry[K, V]),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		stats:    stats,
	}
	s.order.init()
	return s
}

// get returns the live value for key and promotes it to most recently used.
// An expired entry is removed on the spot and reported as a miss.
func (s *shard[K, V]) get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.entries[key]
	if !ok {
		s.stats.misses.Add(1)
		return zero, false
	}
	if e.expired(s.now()) {
		s.deleteLocked(e)
		s.stats.expirations.Add(1)
		s.stats.misses.Add(1)
		return zero, false
	}
	s.order.unlink(e)
	s.order.pushFront(e)
	s.stats.hits.Add(1)
	return e.val, true
}

// put inserts or updates key and marks it most recently used. When the
// insertion pushes the shard over capacity the least recently used entry is
// silently evicted; a single put can evict at most one entry.
func (s *shard[K, V]) put(key K, val V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok {
		if !e.expired(now) {
			e.val = val
			if s.ttl > 0 {
				e.expiresAt = now.Add(s.ttl)
			}
			s.order.unlink(e)
			s.order.pushFront(e)
			return
		}
		// The stale entry is evicted and replaced rather than updated, so
		// the new entry starts with a fresh deadline and fresh recency.
		s.deleteLocked(e)
		s.stats.expirations.Add(1)
	}

	e := &entry[K, V]{key: key, val: val}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}
	s.entries[key] = e
	s.order.pushFront(e)

	if len(s.entries) > s.capacity {
		if victim := s.order.popBack(); victim != nil {
			delete(s.entries, victim.key)
			s.stats.evictions.Add(1)
		}
	}
}

// remove deletes key and returns the value it held. Removing an absent or
// expired key returns the zero value and false.
func (s *shard[K, V]) remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	expired := e.expired(s.now())
	s.deleteLocked(e)
	if expired {
		s.stats.expirations.Add(1)
		return zero, false
	}
	return e.val, true
}

// contains reports whether key holds a live entry. Unlike get it never
// changes recency order and leaves an expired entry in place for the next
// get or put to reap.
func (s *shard[K, V]) contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	return ok && !e.expired(s.now())
}

// size returns the number of live entries. Expired entries that have not
// been reaped yet are excluded from the count but not removed.
func (s *shard[K, V]) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl == 0 {
		return len(s.entries)
	}
	now := s.now()
	n := 0
	for _, e := range s.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// clear drops every entry, severing all list links so abandoned nodes do not
// keep each other reachable.
func (s *shard[K, V]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for e := s.order.head.next; e != &s.order.tail; {
		next := e.next
		e.prev = nil
		e.next = nil
		e = next
	}
	s.order.init()
	clear(s.entries)
}

// deleteLocked unlinks e and removes it from the map. Callers hold s.mu.
func (s *shard[K, V]) deleteLocked(e *entry[K, V]) {
	s.order.unlink(e)
	delete(s.entries, e.key)
}
