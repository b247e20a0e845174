package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/config"
	"github.com/TemirB/kitchen-board/internal/domain"
	"github.com/TemirB/kitchen-board/internal/pkg/retry"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

var (
	ErrBadJSON     = errors.New("bad json")
	ErrInvalid     = errors.New("invalid confirmation")
	ErrApply       = errors.New("apply confirmation failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

type Service interface {
	ApplyConfirmation(ctx context.Context, c domain.Confirmation) error
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

// Handler consumes order store confirmations.
type Handler struct {
	service     Service
	breaker     brk
	logger      *zap.Logger
	retryPolicy config.Retry
}

func NewHandler(service Service, breaker brk, retryPolicy config.Retry, logger *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		breaker:     breaker,
		logger:      logger,
		retryPolicy: retryPolicy,
	}
}

// Handle processes a single message. The consumer commits the offset after
// a nil return. Confirmations for orders this board does not know are
// committed and dropped.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var c domain.Confirmation
	if err := json.Unmarshal(message.Value, &c); err != nil {
		h.logger.Error("bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}
	if err := validate(c); err != nil {
		h.logger.Error("invalid confirmation",
			zap.Error(err),
			zap.String("order_uid", c.OrderUID),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return err
	}

	err := retry.Do(ctx, h.retryPolicy, func() error {
		err := h.service.ApplyConfirmation(ctx, c)
		if errors.Is(err, domain.ErrNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.logger.Warn("confirmation for unknown order skipped",
			zap.String("order_uid", c.OrderUID),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Success()
		return nil
	case err != nil:
		h.logger.Error("apply failed after retries",
			zap.String("order_uid", c.OrderUID),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return fmt.Errorf("%w: %w", ErrApply, err)
	}

	h.breaker.Success()
	h.logger.Info("confirmation applied",
		zap.String("order_uid", c.OrderUID),
		zap.String("status", c.Status.String()),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
	)
	return nil
}

func validate(c domain.Confirmation) error {
	if c.OrderUID == "" {
		return fmt.Errorf("%w: missing order_uid", ErrInvalid)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, c.Status)
	}
	if c.BoardColumn != nil && *c.BoardColumn != "" {
		if _, ok := c.BoardColumn.Index(); !ok {
			return fmt.Errorf("%w: malformed board_column %q", ErrInvalid, *c.BoardColumn)
		}
	}
	return nil
}
