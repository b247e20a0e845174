package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrTypeMismatch = errors.New("named cache holds a different value type")

type invalidator interface {
	Invalidate(key string)
	Purge()
}

// Registry hands out named TTL caches so that every consumer of a name
// observes the same entries.
type Registry struct {
	mu     sync.Mutex
	caches map[string]invalidator
	ttl    time.Duration
	opts   []Option
}

func NewRegistry(defaultTTL time.Duration, opts ...Option) *Registry {
	return &Registry{
		caches: make(map[string]invalidator),
		ttl:    defaultTTL,
		opts:   opts,
	}
}

// Named returns the cache registered under name, creating it on first use.
func Named[V any](r *Registry, name string) (*TTL[V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.caches[name]; ok {
		c, ok := existing.(*TTL[V])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrTypeMismatch, name)
		}
		return c, nil
	}

	c := NewTTL[V](r.ttl, r.opts...)
	r.caches[name] = c
	return c, nil
}

// MustNamed is Named for wiring code where a type clash is a programming error.
func MustNamed[V any](r *Registry, name string) *TTL[V] {
	c, err := Named[V](r, name)
	if err != nil {
		panic(err)
	}
	return c
}

// Invalidate drops key from the named cache, if that cache exists.
func (r *Registry) Invalidate(name, key string) {
	r.mu.Lock()
	c, ok := r.caches[name]
	r.mu.Unlock()
	if ok {
		c.Invalidate(key)
	}
}

func (r *Registry) PurgeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.caches {
		c.Purge()
	}
}
