package ordering

import (
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one Store per name, persisted under "<namespace>:<name>".
type Registry struct {
	mu        sync.Mutex
	namespace string
	storage   Storage
	logger    *zap.Logger
	stores    map[string]*Store
}

func NewRegistry(namespace string, storage Storage, logger *zap.Logger) *Registry {
	return &Registry{
		namespace: namespace,
		storage:   storage,
		logger:    logger,
		stores:    make(map[string]*Store),
	}
}

func (r *Registry) Store(name string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[name]; ok {
		return s
	}
	s := NewStore(r.namespace+":"+name, r.storage, r.logger.With(zap.String("ordering", name)))
	r.stores[name] = s
	return s
}
