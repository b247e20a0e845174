package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/TemirB/kitchen-board/internal/observability"
)

// Producer computes a value on a cache miss.
type Producer[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

type options struct {
	now          func() time.Time
	singleFlight bool
	metrics      observability.Metrics
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSingleFlight makes concurrent misses for the same key share one
// producer call. Without it every caller that misses runs the producer and
// the last one to finish wins.
func WithSingleFlight() Option {
	return func(o *options) { o.singleFlight = true }
}

func WithMetrics(m observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// TTL is a get-or-compute store whose entries go stale after a time-to-live.
// There is no size bound: entries leave only through Invalidate or Purge.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]

	ttl     time.Duration
	now     func() time.Time
	group   *singleflight.Group
	metrics observability.Metrics
}

func NewTTL[V any](ttl time.Duration, opts ...Option) *TTL[V] {
	o := options{now: time.Now, metrics: observability.Noop{}}
	for _, opt := range opts {
		opt(&o)
	}
	c := &TTL[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     o.now,
		metrics: o.metrics,
	}
	if o.singleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// GetOrCompute returns the fresh value stored under key, or runs producer and
// stores its result. An optional ttl overrides the default for the stored
// entry. A producer error is returned as is and nothing is stored.
//
// In single-flight mode the producer runs with the context of the caller
// that started it.
func (c *TTL[V]) GetOrCompute(ctx context.Context, key string, producer Producer[V], ttl ...time.Duration) (V, error) {
	d := c.ttl
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}

	if v, ok := c.lookup(key); ok {
		c.metrics.IncCacheHit()
		return v, nil
	}
	c.metrics.IncCacheMiss()

	if c.group == nil {
		return c.compute(ctx, key, producer, d)
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		return c.compute(ctx, key, producer, d)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// Get returns the value under key if it is still fresh.
func (c *TTL[V]) Get(key string) (V, bool) {
	return c.lookup(key)
}

// Invalidate drops key. Missing keys are ignored.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	if c.group != nil {
		c.group.Forget(key)
	}
}

func (c *TTL[V]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len counts stored entries, stale ones included.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= e.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) compute(ctx context.Context, key string, producer Producer[V], ttl time.Duration) (V, error) {
	v, err := producer(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
	return v, nil
}
