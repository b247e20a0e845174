package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/board"
	"github.com/TemirB/kitchen-board/internal/cache"
	"github.com/TemirB/kitchen-board/internal/domain"
	"github.com/TemirB/kitchen-board/internal/observability"
	"github.com/TemirB/kitchen-board/internal/ordering"
	"github.com/TemirB/kitchen-board/internal/preserve"
	"github.com/TemirB/kitchen-board/internal/workflow"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

const (
	ActiveOrdersCache = "orders:active"
	activeKey         = "all"
	CategoriesStore   = "categories"
)

type Cache interface {
	Set(*domain.Order)
	Get(string) (*domain.Order, bool)
	Remove(string)
}

type Storage interface {
	GetByUID(ctx context.Context, uid string) (*domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, uid string, status domain.Status) error
	UpdateBoardColumn(ctx context.Context, uid string, column domain.BoardColumn) error
	ApplyConfirmation(ctx context.Context, c domain.Confirmation) (*domain.Order, error)
	Categories(ctx context.Context) ([]string, error)
}

type Deps struct {
	Storage  Storage
	Cache    Cache
	Lists    *cache.Registry
	Engine   *workflow.Engine
	Resolver *board.Resolver
	Ordering *ordering.Registry
	Views    *preserve.Preserver
	Logger   *zap.Logger
	Metrics  observability.Metrics
}

// Service is the kitchen board use-case layer. Local changes are optimistic:
// the order store confirms them later through ApplyConfirmation.
type Service struct {
	storage    Storage
	cache      Cache
	lists      *cache.Registry
	active     *cache.TTL[[]domain.Order]
	engine     *workflow.Engine
	resolver   *board.Resolver
	categories *ordering.Store
	views      *preserve.Preserver
	logger     *zap.Logger
	metrics    observability.Metrics
	now        func() time.Time
}

func NewService(d Deps) *Service {
	if d.Metrics == nil {
		d.Metrics = observability.NewNoop()
	}
	return &Service{
		storage:    d.Storage,
		cache:      d.Cache,
		lists:      d.Lists,
		active:     cache.MustNamed[[]domain.Order](d.Lists, ActiveOrdersCache),
		engine:     d.Engine,
		resolver:   d.Resolver,
		categories: d.Ordering.Store(CategoriesStore),
		views:      d.Views,
		logger:     d.Logger,
		metrics:    d.Metrics,
		now:        time.Now,
	}
}

// ListActive returns every non-terminal order. Results are shared through the
// orders:active TTL cache.
func (s *Service) ListActive(ctx context.Context) ([]domain.Order, error) {
	list, err := s.active.GetOrCompute(ctx, activeKey, func(ctx context.Context) ([]domain.Order, error) {
		t0 := time.Now()
		orders, err := s.storage.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Active orders loaded from DB",
			zap.Int("orders", len(orders)),
			zap.Float64("db_ms", msSince(t0)),
		)
		return orders, nil
	})
	if err != nil {
		s.logger.Error("Can't list active orders", zap.Error(err))
		return nil, err
	}
	return append([]domain.Order(nil), list...), nil
}

func (s *Service) GetOrder(ctx context.Context, uid string) (*domain.Order, error) {
	o, _, err := s.GetOrderWithStats(ctx, uid)
	return o, err
}

func (s *Service) GetOrderWithStats(ctx context.Context, uid string) (*domain.Order, LookupStats, error) {
	var st LookupStats

	tCacheStart := time.Now()
	if order, ok := s.cache.Get(uid); ok {
		st.Source = SourceCache
		st.CacheMs = msSince(tCacheStart)
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)

		s.logger.Debug("Order fetched from cache",
			zap.String("order_uid", uid),
			zap.Float64("cache_ms", st.CacheMs),
		)
		return order, st, nil
	}

	s.metrics.IncCacheMiss()
	st.CacheMs = msSince(tCacheStart)

	tDbStart := time.Now()
	order, err := s.storage.GetByUID(ctx, uid)
	if err != nil {
		s.logger.Warn("Can't find order",
			zap.String("order_uid", uid),
			zap.Error(err),
		)
		return nil, st, err
	}

	st.Source = SourceDB
	st.DBMs = msSince(tDbStart)

	s.cache.Set(order)

	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.DBMs)
	s.logger.Debug("Order fetched from DB",
		zap.String("order_uid", uid),
		zap.Float64("cache_ms", st.CacheMs),
		zap.Float64("db_ms", st.DBMs),
	)
	return order, st, nil
}

func (s *Service) Actions(ctx context.Context, uid string) ([]workflow.Action, error) {
	order, err := s.GetOrder(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.engine.AvailableActions(order.Status), nil
}

// Transition moves an order to target. If the order store could not be
// notified the local projection is still updated, and the returned error
// wraps workflow.ErrNotify.
func (s *Service) Transition(ctx context.Context, uid string, target domain.Status) (*domain.Order, WriteStats, error) {
	var st WriteStats

	order, err := s.GetOrder(ctx, uid)
	if err != nil {
		return nil, st, err
	}
	from := order.Status

	tNotify := time.Now()
	next, err := s.engine.ApplyTransition(ctx, *order, target)
	if err != nil && !errors.Is(err, workflow.ErrNotify) {
		s.metrics.ObserveTransition(from.String(), target.String(), false)
		return nil, st, err
	}
	st.NotifyMs = msSince(tNotify)
	st.Pending = err != nil
	notifyErr := err

	t0 := time.Now()
	if err := s.storage.UpdateStatus(ctx, uid, next.Status); err != nil {
		s.logger.Error("Error while persisting status",
			zap.String("order_uid", uid),
			zap.Error(err),
		)
		s.metrics.ObserveTransition(from.String(), target.String(), false)
		return nil, st, fmt.Errorf("persist status: %w", err)
	}
	st.DBWriteMs = msSince(t0)

	s.cache.Set(&next)
	s.lists.Invalidate(ActiveOrdersCache, activeKey)
	s.metrics.ObserveTransition(from.String(), target.String(), true)

	s.logger.Info("Order status changed",
		zap.String("order_uid", uid),
		zap.String("from", from.String()),
		zap.String("to", next.Status.String()),
		zap.Float64("notify_ms", st.NotifyMs),
		zap.Float64("db_write_ms", st.DBWriteMs),
		zap.Bool("pending", st.Pending),
	)
	return &next, st, notifyErr
}

// Drop places order uid on the board. An empty ev.SourceOrderID means uid;
// any other value must match it. The flag reports whether the column changed.
func (s *Service) Drop(ctx context.Context, uid string, ev board.DropEvent) (*domain.Order, bool, error) {
	if ev.SourceOrderID == "" {
		ev.SourceOrderID = uid
	}
	order, err := s.GetOrder(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	next, changed, err := s.resolver.Drop(ctx, *order, ev)
	if err != nil && !errors.Is(err, board.ErrNotify) {
		return nil, false, err
	}
	notifyErr := err

	s.metrics.ObservePlacement(next.BoardColumn.String(), changed)
	if !changed {
		return order, false, nil
	}

	if err := s.storage.UpdateBoardColumn(ctx, next.OrderUID, next.BoardColumn); err != nil {
		s.logger.Error("Error while persisting placement",
			zap.String("order_uid", next.OrderUID),
			zap.Error(err),
		)
		return nil, false, fmt.Errorf("persist placement: %w", err)
	}

	s.cache.Set(&next)
	s.lists.Invalidate(ActiveOrdersCache, activeKey)
	return &next, true, notifyErr
}

// ApplyConfirmation overwrites the local projection with the order store's
// authoritative state.
func (s *Service) ApplyConfirmation(ctx context.Context, c domain.Confirmation) error {
	if c.ConfirmedAt.IsZero() {
		c.ConfirmedAt = s.now()
	}

	order, err := s.storage.ApplyConfirmation(ctx, c)
	if err != nil {
		s.logger.Error("Error while applying confirmation",
			zap.String("order_uid", c.OrderUID),
			zap.Error(err),
		)
		return err
	}

	s.cache.Set(order)
	s.lists.Invalidate(ActiveOrdersCache, activeKey)

	s.logger.Info("Order confirmed by store",
		zap.String("order_uid", order.OrderUID),
		zap.String("status", order.Status.String()),
		zap.String("board_column", order.BoardColumn.String()),
	)
	return nil
}

// Categories returns the menu categories in the user's order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	keys, err := s.storage.Categories(ctx)
	if err != nil {
		s.logger.Error("Can't load categories", zap.Error(err))
		return nil, err
	}
	return s.categories.Reconcile(ctx, keys), nil
}

func (s *Service) ReorderCategories(ctx context.Context, keys []string) ([]string, error) {
	if _, err := s.Categories(ctx); err != nil {
		return nil, err
	}
	if err := s.categories.Reorder(ctx, keys); err != nil {
		return nil, err
	}
	return s.categories.Keys(), nil
}

func (s *Service) ResetCategories(ctx context.Context) ([]string, error) {
	if _, err := s.Categories(ctx); err != nil {
		return nil, err
	}
	return s.categories.ResetToAlphabetical(ctx), nil
}

func (s *Service) Columns() []domain.BoardColumn {
	return s.resolver.Columns()
}

// SetMaxColumns changes the board width. Orders already placed in a column
// beyond the new width keep their placement until they are dropped again.
func (s *Service) SetMaxColumns(n int) ([]domain.BoardColumn, error) {
	if err := s.resolver.SetMaxColumns(n); err != nil {
		return nil, err
	}
	s.logger.Info("Board width changed", zap.Int("max_columns", n))
	return s.resolver.Columns(), nil
}

type ViewState struct {
	Route string          `json:"route"`
	Value json.RawMessage `json:"value"`
}

// LoadView returns the preserved client view state for key. A dependency
// list different from the stored one discards the stored state.
func (s *Service) LoadView(key, route string, deps ...any) ViewState {
	st := preserve.Use[json.RawMessage](s.views, route, key, nil, deps...)
	return ViewState{Route: st.Route(), Value: st.Value()}
}

// SaveView records value as the state of key, last write wins.
func (s *Service) SaveView(key, route string, value json.RawMessage, deps ...any) {
	st := preserve.Use[json.RawMessage](s.views, route, key, nil, deps...)
	st.Set(value)
	st.Leave()
}
