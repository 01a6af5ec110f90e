// Package main benchmarks goShardCache against two established in-process
// caches: ristretto (approximate TinyLFU admission) and hashicorp/golang-lru
// (single-lock strict LRU). It runs a sequential write phase, a sequential
// read (hit) phase, and a concurrent mixed phase, and reports the ratio of
// each contender against goShardCache.
//
// Run:
//
//	go run ./cmd/cachebench --ops 100000 --capacity 10000 --workers 8
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	goshardcache "github.com/Keksclan/goShardCache"
)

type options struct {
	ops      int
	capacity int
	shards   int
	workers  int
	ttl      time.Duration
	rps      float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "cachebench",
		Short: "Benchmark goShardCache against ristretto and hashicorp/golang-lru",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(o)
		},
	}
	cmd.Flags().IntVar(&o.ops, "ops", 100_000, "operations per phase")
	cmd.Flags().IntVar(&o.capacity, "capacity", 10_000, "cache capacity in entries")
	cmd.Flags().IntVar(&o.shards, "shards", goshardcache.DefaultShardCount, "goShardCache shard count")
	cmd.Flags().IntVar(&o.workers, "workers", 8, "goroutines in the concurrent phase")
	cmd.Flags().DurationVar(&o.ttl, "ttl", 0, "entry TTL (goShardCache and ristretto only; 0 disables)")
	cmd.Flags().Float64Var(&o.rps, "rate", 0, "throttle the concurrent phase to this many ops/sec per contender (0 = unthrottled)")
	return cmd
}

// store is the minimal surface shared by the benchmarked caches.
type store interface {
	put(key string, val int)
	get(key string) (int, bool)
	// flush blocks until buffered writes are applied (ristretto buffers
	// them); a no-op for the synchronous contenders.
	flush()
}

type shardCacheStore struct{ c *goshardcache.Cache[string, int] }

func (s shardCacheStore) put(k string, v int) { s.c.Put(k, v) }
func (s shardCacheStore) get(k string) (int, bool) {
	return s.c.Get(k)
}
func (s shardCacheStore) flush() {}

type ristrettoStore struct {
	c   *ristretto.Cache[string, int]
	ttl time.Duration
}

func (s ristrettoStore) put(k string, v int) {
	if s.ttl > 0 {
		s.c.SetWithTTL(k, v, 1, s.ttl)
		return
	}
	s.c.Set(k, v, 1)
}
func (s ristrettoStore) get(k string) (int, bool) { return s.c.Get(k) }
func (s ristrettoStore) flush()                   { s.c.Wait() }

type golangLRUStore struct{ c *lru.Cache[string, int] }

func (s golangLRUStore) put(k string, v int) { s.c.Add(k, v) }
func (s golangLRUStore) get(k string) (int, bool) {
	return s.c.Get(k)
}
func (s golangLRUStore) flush() {}

type contender struct {
	name string
	s    store
}

func run(o options) error {
	var shardOpts []goshardcache.Option
	shardOpts = append(shardOpts, goshardcache.WithShards(o.shards))
	if o.ttl > 0 {
		shardOpts = append(shardOpts, goshardcache.WithTTL(o.ttl))
	}
	sc, err := goshardcache.New[string, int](o.capacity, shardOpts...)
	if err != nil {
		return err
	}

	rc, err := ristretto.NewCache(&ristretto.Config[string, int]{
		NumCounters: int64(o.capacity) * 10,
		MaxCost:     int64(o.capacity),
		BufferItems: 64,
	})
	if err != nil {
		return err
	}
	defer rc.Close()

	hc, err := lru.New[string, int](o.capacity)
	if err != nil {
		return err
	}

	contenders := []contender{
		{"goShardCache", shardCacheStore{sc}},
		{"ristretto", ristrettoStore{c: rc, ttl: o.ttl}},
		{"golang-lru", golangLRUStore{hc}},
	}

	keys := make([]string, o.ops)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
	}

	fmt.Printf("Benchmarking %d ops, capacity %d, %d workers…\n\n", o.ops, o.capacity, o.workers)

	report("Sequential writes (misses)", contenders, func(s store) {
		for i, k := range keys {
			s.put(k, i)
		}
		s.flush()
	})

	// Read the most recent capacity keys: the only ones guaranteed resident
	// after the write phase filled the cache.
	readKeys := keys
	if o.capacity < o.ops {
		readKeys = keys[o.ops-o.capacity:]
	}
	report("Sequential reads (hits)", contenders, func(s store) {
		for _, k := range readKeys {
			s.get(k)
		}
	})

	report("Concurrent mixed (get+put)", contenders, func(s store) {
		var limiter *rate.Limiter
		if o.rps > 0 {
			limiter = rate.NewLimiter(rate.Limit(o.rps), o.workers)
		}
		var wg sync.WaitGroup
		for w := range o.workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := w; i < len(keys); i += o.workers {
					if limiter != nil {
						_ = limiter.Wait(context.Background())
					}
					if i%2 == 0 {
						s.put(keys[i], i)
					} else {
						s.get(keys[i/2])
					}
				}
			}()
		}
		wg.Wait()
		s.flush()
	})

	st := sc.Stats()
	fmt.Printf("goShardCache stats: hits=%d misses=%d evictions=%d expirations=%d\n",
		st.Hits, st.Misses, st.Evictions, st.Expirations)
	return nil
}

// report times fn for every contender and prints each result with its ratio
// against the first contender.
func report(title string, contenders []contender, fn func(store)) {
	fmt.Printf("%s:\n", title)
	var baseline time.Duration
	for i, c := range contenders {
		start := time.Now()
		fn(c.s)
		elapsed := time.Since(start)
		if i == 0 {
			baseline = elapsed
			fmt.Printf("  %-14s %10s\n", c.name, elapsed.Round(time.Microsecond))
			continue
		}
		ratio := float64(elapsed) / float64(baseline)
		fmt.Printf("  %-14s %10s  (%.2fx)\n", c.name, elapsed.Round(time.Microsecond), ratio)
	}
	fmt.Println()
}
