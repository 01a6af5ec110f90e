package goshardcache

// DefaultShardCount is the shard count used when WithShards is not supplied.
// Sixteen shards keep contention low on typical core counts while keeping
// the per-shard capacity rounding error small.
const DefaultShardCount = 16
