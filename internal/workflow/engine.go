// Package workflow decides which status transitions an order may undergo
// and applies them.
//
// Transitions (forward only):
//
//	novo ──Confirm──> confirmado ──Prepare──> preparando ──Ship──> saiu_entrega ──Deliver──> entregue
//	  │                   │
//	  └─────Cancel────────┴──────> cancelado
//
// entregue and cancelado are terminal.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/domain"
)

//go:generate mockgen -source internal/workflow/engine.go -destination=internal/workflow/engine_mock_test.go -package=workflow

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotify            = errors.New("order store notification failed")
)

// InvalidTransitionError reports a target status that is not reachable
// from the order's current status.
type InvalidTransitionError struct {
	OrderUID string
	From     domain.Status
	To       domain.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot move from %q to %q", e.OrderUID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// Action is a transition offered to the operator.
type Action struct {
	Label  string        `json:"label"`
	Target domain.Status `json:"target_status"`
}

// Notifier forwards an applied transition to the order store.
type Notifier interface {
	StatusChanged(ctx context.Context, order domain.Order, from domain.Status) error
}

var transitions = map[domain.Status][]Action{
	domain.StatusNovo: {
		{Label: "Confirm", Target: domain.StatusConfirmado},
		{Label: "Cancel", Target: domain.StatusCancelado},
	},
	domain.StatusConfirmado: {
		{Label: "Prepare", Target: domain.StatusPreparando},
		{Label: "Cancel", Target: domain.StatusCancelado},
	},
	domain.StatusPreparando: {
		{Label: "Ship", Target: domain.StatusSaiuEntrega},
	},
	domain.StatusSaiuEntrega: {
		{Label: "Deliver", Target: domain.StatusEntregue},
	},
	domain.StatusEntregue:  {},
	domain.StatusCancelado: {},
}

type Engine struct {
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewEngine(notifier Notifier, logger *zap.Logger) *Engine {
	return &Engine{
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// AvailableActions returns the transitions offered for status, in display
// order. Terminal and unknown statuses have none.
func (e *Engine) AvailableActions(status domain.Status) []Action {
	actions := transitions[status]
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

func (e *Engine) CanTransition(from, to domain.Status) bool {
	for _, a := range transitions[from] {
		if a.Target == to {
			return true
		}
	}
	return false
}

// ApplyTransition returns a copy of order moved to target and notifies the
// order store. The result is provisional until the store confirms it.
//
// When the notification fails the transitioned order is still returned,
// together with an error wrapping ErrNotify.
func (e *Engine) ApplyTransition(ctx context.Context, order domain.Order, target domain.Status) (domain.Order, error) {
	if !e.CanTransition(order.Status, target) {
		e.logger.Warn("Rejected status transition",
			zap.String("order_uid", order.OrderUID),
			zap.String("from", order.Status.String()),
			zap.String("to", target.String()),
		)
		return order, &InvalidTransitionError{OrderUID: order.OrderUID, From: order.Status, To: target}
	}

	from := order.Status
	next := order.Clone()
	next.Status = target
	next.UpdatedAt = e.now()

	e.logger.Info("Status transition applied",
		zap.String("order_uid", next.OrderUID),
		zap.String("from", from.String()),
		zap.String("to", target.String()),
	)

	if e.notifier == nil {
		return next, nil
	}
	if err := e.notifier.StatusChanged(ctx, next, from); err != nil {
		e.logger.Error("Error while notifying order store",
			zap.String("order_uid", next.OrderUID),
			zap.Error(err),
		)
		return next, fmt.Errorf("%w: %w", ErrNotify, err)
	}
	return next, nil
}
