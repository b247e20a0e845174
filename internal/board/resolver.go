// Package board resolves drag-and-drop events into kitchen-display column
// placements. Placement is independent of order status.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/domain"
)

//go:generate mockgen -source internal/board/resolver.go -destination=internal/board/resolver_mock_test.go -package=board

const DefaultMaxColumns = 4

var (
	ErrInvalidMaxColumns = errors.New("max columns must be positive")
	ErrSourceMismatch    = errors.New("drop source does not match order")
	ErrNotify            = errors.New("placement notification failed")
)

// DropEvent is what the drag-and-drop surface delivers: the dragged order and
// whatever element it was released on.
type DropEvent struct {
	SourceOrderID string `json:"source_order_id"`
	DropTargetID  string `json:"drop_target_id"`
}

// Listener is told about placements that actually changed.
type Listener interface {
	PlacementChanged(ctx context.Context, order domain.Order, from domain.BoardColumn) error
}

type Resolver struct {
	mu         sync.RWMutex
	maxColumns int

	listener Listener
	logger   *zap.Logger
}

func NewResolver(maxColumns int, listener Listener, logger *zap.Logger) (*Resolver, error) {
	if maxColumns < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxColumns, maxColumns)
	}
	return &Resolver{
		maxColumns: maxColumns,
		listener:   listener,
		logger:     logger,
	}, nil
}

func (r *Resolver) MaxColumns() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.maxColumns
}

// SetMaxColumns changes the screen-level column count. Orders already placed
// beyond the new count keep their column until they are dropped again.
func (r *Resolver) SetMaxColumns(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxColumns, n)
	}
	r.mu.Lock()
	r.maxColumns = n
	r.mu.Unlock()
	return nil
}

func (r *Resolver) Columns() []domain.BoardColumn {
	n := r.MaxColumns()
	out := make([]domain.BoardColumn, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Column(i))
	}
	return out
}

// Resolve maps a drop target to a column. Anything that is not an in-range
// column identifier (another card, a header, garbage) lands in column-1.
func (r *Resolver) Resolve(dropTargetID string) domain.BoardColumn {
	c := domain.BoardColumn(dropTargetID)
	if n, ok := c.Index(); ok && n <= r.MaxColumns() {
		return c
	}
	return domain.Column(1)
}

// Drop places order according to ev. The returned flag is false when the
// order already sat in the resolved column; the listener is not called then.
func (r *Resolver) Drop(ctx context.Context, order domain.Order, ev DropEvent) (domain.Order, bool, error) {
	if ev.SourceOrderID != order.OrderUID {
		return order, false, fmt.Errorf("%w: %q != %q", ErrSourceMismatch, ev.SourceOrderID, order.OrderUID)
	}

	target := r.Resolve(ev.DropTargetID)
	if string(target) != ev.DropTargetID {
		r.logger.Debug("Unrecognized drop target, falling back to first column",
			zap.String("order_uid", order.OrderUID),
			zap.String("drop_target_id", ev.DropTargetID),
		)
	}

	if order.BoardColumn == target {
		return order, false, nil
	}

	from := order.BoardColumn
	next := order.Clone()
	next.BoardColumn = target

	r.logger.Info("Order placed",
		zap.String("order_uid", next.OrderUID),
		zap.String("from", from.String()),
		zap.String("to", target.String()),
	)

	if r.listener == nil {
		return next, true, nil
	}
	if err := r.listener.PlacementChanged(ctx, next, from); err != nil {
		r.logger.Error("Error while notifying placement",
			zap.String("order_uid", next.OrderUID),
			zap.Error(err),
		)
		return next, true, fmt.Errorf("%w: %w", ErrNotify, err)
	}
	return next, true, nil
}
