package goshardcache

import "time"

// config holds the internal configuration assembled via functional options.
type config struct {
	shards int
	ttl    time.Duration
	ttlSet bool
}

func defaultConfig() config {
	return config{shards: DefaultShardCount}
}
