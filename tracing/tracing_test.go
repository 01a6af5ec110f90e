package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	goshardcache "github.com/Keksclan/goShardCache"
)

// newTraced returns a wrapped cache backed by an in-memory span recorder.
func newTraced(t *testing.T) (*Cache[string, int], *tracetest.SpanRecorder) {
	t.Helper()
	inner, err := goshardcache.New[string, int](100)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return Wrap(inner, &Config{TracerProvider: tp}), rec
}

func TestGet_RecordsHitAttribute(t *testing.T) {
	c, rec := newTraced(t)
	ctx := t.Context()

	c.Put(ctx, "k", 1)
	if v, ok := c.Get(ctx, "k"); !ok || v != 1 {
		t.Fatalf("Get = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get(ctx, "absent"); ok {
		t.Fatal("expected miss")
	}

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if spans[0].Name() != "goshardcache.Put" {
		t.Fatalf("expected Put span, got %q", spans[0].Name())
	}
	if spans[1].SpanKind() != trace.SpanKindInternal {
		t.Fatalf("expected SpanKindInternal, got %v", spans[1].SpanKind())
	}
	assertBoolAttr(t, spans[1].Attributes(), "cache.hit", true)
	assertBoolAttr(t, spans[2].Attributes(), "cache.hit", false)
}

func TestGetOrPut_RecordsLoaderError(t *testing.T) {
	c, rec := newTraced(t)

	boom := errors.New("boom")
	_, err := c.GetOrPut(t.Context(), "k", func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if got := spans[0].Status().Code; got != codes.Error {
		t.Fatalf("expected error status, got %v", got)
	}
}

func TestWrap_PreservesSemantics(t *testing.T) {
	c, _ := newTraced(t)
	ctx := t.Context()

	c.Put(ctx, "a", 1)
	c.Put(ctx, "b", 2)
	if v, ok := c.Remove(ctx, "a"); !ok || v != 1 {
		t.Fatalf("Remove = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Remove(ctx, "a"); ok {
		t.Fatal("second Remove should report absent")
	}
	if got := c.Unwrap().Len(); got != 1 {
		t.Fatalf("Len = %d, want 1", got)
	}
}

// assertBoolAttr fails the test when attrs does not contain key=want.
func assertBoolAttr(t *testing.T, attrs []attribute.KeyValue, key string, want bool) {
	t.Helper()
	for _, kv := range attrs {
		if string(kv.Key) == key {
			if got := kv.Value.AsBool(); got != want {
				t.Fatalf("attribute %q = %v, want %v", key, got, want)
			}
			return
		}
	}
	t.Fatalf("attribute %q not found", key)
}
