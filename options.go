package goshardcache

import "time"

// Option configures a Cache.
type Option func(*config)

// WithShards sets the number of shards the keyspace is partitioned into.
// More shards mean less lock contention at the cost of coarser capacity
// rounding. [New] rejects values below one.
func WithShards(n int) Option {
	return func(c *config) {
		c.shards = n
	}
}

// WithTTL applies a uniform time-to-live to every entry. An entry's deadline
// is set on insertion and refreshed on every Put of the same key; Get does
// not refresh it. [New] rejects non-positive durations. Without this option
// entries never expire.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
		c.ttlSet = true
	}
}
