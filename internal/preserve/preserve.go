// Package preserve keeps screen state alive across navigation.
//
// A State handle is "live" between Use and Leave. While live, every route
// change snapshots its value under the logical key; the next Use of that key,
// from any route, starts from the snapshot. A key holds one snapshot, the
// latest. Changing the dependency list drops the snapshot.
package preserve

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

type snapshot struct {
	value any
	route string
	deps  []any
}

type Preserver struct {
	mu        sync.Mutex
	snapshots map[string]snapshot
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Preserver {
	return &Preserver{
		snapshots: make(map[string]snapshot),
		logger:    logger,
	}
}

// Purge drops the snapshot for logicalKey.
func (p *Preserver) Purge(logicalKey string) {
	p.mu.Lock()
	delete(p.snapshots, logicalKey)
	p.mu.Unlock()
}

func (p *Preserver) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

func (p *Preserver) save(logicalKey, route string, value any, deps []any) {
	p.mu.Lock()
	p.snapshots[logicalKey] = snapshot{value: value, route: route, deps: deps}
	p.mu.Unlock()
}

type State[T any] struct {
	p          *Preserver
	logicalKey string
	initial    T

	mu    sync.Mutex
	route string
	deps  []any
	value T
	live  bool
}

// Use opens a live handle for logicalKey on routeKey. The value starts from
// the last snapshot, unless there is none, it holds another type, or it was
// taken under different deps; then it starts from initial.
func Use[T any](p *Preserver, routeKey, logicalKey string, initial T, deps ...any) *State[T] {
	deps = normalize(deps)
	value := initial

	p.mu.Lock()
	if snap, ok := p.snapshots[logicalKey]; ok {
		v, typed := snap.value.(T)
		switch {
		case !reflect.DeepEqual(snap.deps, deps):
			delete(p.snapshots, logicalKey)
			p.logger.Debug("Preserved state dropped, dependencies changed",
				zap.String("logical_key", logicalKey),
				zap.String("route", routeKey),
			)
		case !typed:
			p.logger.Warn("Preserved state has a different type, ignoring it",
				zap.String("logical_key", logicalKey),
			)
		default:
			value = v
		}
	}
	p.mu.Unlock()

	return &State[T]{
		p:          p,
		logicalKey: logicalKey,
		initial:    initial,
		route:      routeKey,
		deps:       deps,
		value:      value,
		live:       true,
	}
}

func (s *State[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func (s *State[T]) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

// Set updates the live value. It is ignored after Leave.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live {
		s.value = v
	}
}

// Navigate records a location change and snapshots the value.
func (s *State[T]) Navigate(routeKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live || routeKey == s.route {
		return
	}
	s.p.save(s.logicalKey, s.route, s.value, s.deps)
	s.route = routeKey
}

// Leave takes the final snapshot and ends the handle.
func (s *State[T]) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live {
		return
	}
	s.p.save(s.logicalKey, s.route, s.value, s.deps)
	s.live = false
}

// SetDeps replaces the dependency list. Any change drops the snapshot and
// resets the live value to the initial one.
func (s *State[T]) SetDeps(deps ...any) {
	deps = normalize(deps)

	s.mu.Lock()
	defer s.mu.Unlock()
	if reflect.DeepEqual(s.deps, deps) {
		return
	}
	s.deps = deps
	s.p.Purge(s.logicalKey)
	if s.live {
		s.value = s.initial
	}
}

func normalize(deps []any) []any {
	if len(deps) == 0 {
		return nil
	}
	out := make([]any, len(deps))
	copy(out, deps)
	return out
}
