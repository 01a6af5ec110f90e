// Package tracing provides an OpenTelemetry decorator for goShardCache. It
// is entirely optional — spans are only produced when a cache is wrapped via
// [Wrap], and the core cache never imports OpenTelemetry.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	goshardcache "github.com/Keksclan/goShardCache"
)

// Config holds the OpenTelemetry configuration used by the decorator.
type Config struct {
	// TracerProvider supplies the Tracer used to create spans. When nil the
	// global otel.GetTracerProvider() is used.
	TracerProvider trace.TracerProvider
}

// tracer returns a configured [trace.Tracer].
func (c *Config) tracer() trace.Tracer {
	tp := c.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer("github.com/Keksclan/goShardCache/tracing")
}

// Cache wraps a [goshardcache.Cache] and records a span per operation. The
// wrapped methods take a context so spans nest under the caller's trace.
type Cache[K comparable, V any] struct {
	inner *goshardcache.Cache[K, V]
	cfg   *Config
}

// Wrap decorates inner with tracing. A nil cfg uses the global tracer
// provider.
func Wrap[K comparable, V any](inner *goshardcache.Cache[K, V], cfg *Config) *Cache[K, V] {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Cache[K, V]{inner: inner, cfg: cfg}
}

// Unwrap returns the underlying cache.
func (c *Cache[K, V]) Unwrap() *goshardcache.Cache[K, V] {
	return c.inner
}

// Get looks up key, recording the hit/miss outcome on the span.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool) {
	_, span := c.cfg.tracer().Start(ctx, "goshardcache.Get", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	v, ok := c.inner.Get(key)
	span.SetAttributes(attribute.Bool("cache.hit", ok))
	return v, ok
}

// Put stores key.
func (c *Cache[K, V]) Put(ctx context.Context, key K, val V) {
	_, span := c.cfg.tracer().Start(ctx, "goshardcache.Put", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	c.inner.Put(key, val)
}

// Remove deletes key, recording whether it was present.
func (c *Cache[K, V]) Remove(ctx context.Context, key K) (V, bool) {
	_, span := c.cfg.tracer().Start(ctx, "goshardcache.Remove", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	v, ok := c.inner.Remove(key)
	span.SetAttributes(attribute.Bool("cache.removed", ok))
	return v, ok
}

// GetOrPut returns the cached value for key, loading it on a miss. The span
// covers the whole operation including the loader, and records whether the
// value came from cache.
func (c *Cache[K, V]) GetOrPut(ctx context.Context, key K, loader func(context.Context) (V, error)) (V, error) {
	ctx, span := c.cfg.tracer().Start(ctx, "goshardcache.GetOrPut", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	hit := c.inner.Contains(key)
	span.SetAttributes(attribute.Bool("cache.hit", hit))

	v, err := c.inner.GetOrPut(ctx, key, loader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}
