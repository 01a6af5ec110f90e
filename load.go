package goshardcache

import (
	"context"
	"sync"
)

// call deduplicates concurrent loads for the same key.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// GetOrPut returns the cached value for key. On a miss it calls loader
// exactly once — concurrent callers for the same key wait for that one load
// instead of stampeding — stores the result, and returns it. A loader error
// is returned to every waiting caller and nothing is stored.
func (c *Cache[K, V]) GetOrPut(ctx context.Context, key K, loader func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.loadMu.Lock()
	if cl, ok := c.loads[key]; ok {
		c.loadMu.Unlock()
		cl.wg.Wait()
		if cl.err != nil {
			var zero V
			return zero, cl.err
		}
		return cl.val, nil
	}

	cl := &call[V]{}
	cl.wg.Add(1)
	c.loads[key] = cl
	c.loadMu.Unlock()

	cl.val, cl.err = loader(ctx)
	if cl.err == nil {
		c.Put(key, cl.val)
	}
	cl.wg.Done()

	c.loadMu.Lock()
	delete(c.loads, key)
	c.loadMu.Unlock()

	if cl.err != nil {
		var zero V
		return zero, cl.err
	}
	return cl.val, nil
}
