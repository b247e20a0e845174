// Package ordering keeps a user-chosen order of a changing key set (product
// categories, for instance) and persists it across reloads.
//
// Reconciliation never reshuffles what the user arranged: keys that vanished
// upstream are filtered out and new keys are appended at the end. Storage
// writes are best-effort; when they fail the in-memory order stays
// authoritative for the life of the process.
package ordering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

//go:generate mockgen -source internal/ordering/store.go -destination=internal/ordering/store_mock_test.go -package=ordering

var ErrNotPermutation = errors.New("new order is not a permutation of the known keys")

// Storage is the key-value medium orderings are persisted in.
type Storage interface {
	// Load returns found=false when nothing is stored under key.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	Save(ctx context.Context, key string, data []byte) error
}

type Store struct {
	mu      sync.Mutex
	key     string
	storage Storage
	logger  *zap.Logger

	loaded bool
	order  []string
	known  []string
}

func NewStore(key string, storage Storage, logger *zap.Logger) *Store {
	return &Store{
		key:     key,
		storage: storage,
		logger:  logger,
	}
}

func (s *Store) Key() string { return s.key }

// Reconcile merges the authoritative key set into the stored order and
// persists the result. Without a usable stored order the keys come back
// sorted.
func (s *Store) Reconcile(ctx context.Context, authoritative []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.order = s.load(ctx)
		s.loaded = true
	}

	auth := unique(authoritative)
	present := make(map[string]struct{}, len(auth))
	for _, k := range auth {
		present[k] = struct{}{}
	}

	kept := make([]string, 0, len(auth))
	seen := make(map[string]struct{}, len(auth))
	for _, k := range s.order {
		if _, ok := present[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, k)
	}

	var result []string
	if len(kept) == 0 {
		result = sorted(auth)
	} else {
		var added []string
		for _, k := range auth {
			if _, ok := seen[k]; !ok {
				added = append(added, k)
			}
		}
		result = append(kept, sorted(added)...)
	}

	s.order = result
	s.known = auth
	s.persist(ctx)
	return clone(result)
}

// Reorder replaces the order verbatim. Once a key set is known, newOrder
// must be a permutation of it.
func (s *Store) Reorder(ctx context.Context, newOrder []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.known != nil && !isPermutation(newOrder, s.known) {
		return fmt.Errorf("%w: got %d keys, know %d", ErrNotPermutation, len(newOrder), len(s.known))
	}
	if s.known == nil {
		s.known = unique(newOrder)
	}

	s.order = clone(newOrder)
	s.loaded = true
	s.persist(ctx)
	return nil
}

// ResetToAlphabetical discards the user's arrangement. The keys are the
// known authoritative set, or the stored order when nothing was reconciled
// yet. With neither, storage is left untouched.
func (s *Store) ResetToAlphabetical(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.order = s.load(ctx)
		s.loaded = true
	}

	base := s.known
	if base == nil {
		base = unique(s.order)
	}
	if len(base) == 0 {
		return []string{}
	}
	s.order = sorted(base)
	s.persist(ctx)
	return clone(s.order)
}

// Keys returns the current in-memory order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.order)
}

func (s *Store) load(ctx context.Context) []string {
	data, found, err := s.storage.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn("Error while loading stored ordering",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return nil
	}
	if !found {
		return nil
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		s.logger.Warn("Stored ordering is not a string array, ignoring it",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return nil
	}
	return keys
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.order)
	if err != nil {
		s.logger.Error("Error while encoding ordering", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logger.Warn("Ordering not persisted, keeping it in memory",
			zap.String("key", s.key),
			zap.Error(err),
		)
	}
}

func unique(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func sorted(keys []string) []string {
	out := clone(keys)
	sort.Strings(out)
	return out
}

func clone(keys []string) []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

func isPermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(b))
	for _, k := range b {
		counts[k]++
	}
	for _, k := range a {
		counts[k]--
		if counts[k] < 0 {
			return false
		}
	}
	return true
}
