package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/domain"
)

//go:generate mockgen -source internal/cache/orders.go -destination=internal/cache/orders_mock_test.go -package=cache

type repo interface {
	GetByUID(ctx context.Context, uid string) (*domain.Order, error)
	RecentOrderUIDs(ctx context.Context, limit int) ([]string, error)
}

// Orders keeps the most recently touched order projections.
type Orders struct {
	size   int
	lru    *lru.Cache[string, domain.Order]
	logger *zap.Logger
}

func NewOrders(size int, logger *zap.Logger) (*Orders, error) {
	c, err := lru.New[string, domain.Order](size)
	if err != nil {
		return nil, err
	}
	return &Orders{
		size:   size,
		lru:    c,
		logger: logger,
	}, nil
}

// Warm preloads the most recent orders. Failures are logged and skipped.
func (c *Orders) Warm(ctx context.Context, repo repo) {
	uids, err := repo.RecentOrderUIDs(ctx, c.size)
	if err != nil {
		c.logger.Warn("Cache warm-up skipped", zap.Error(err))
		return
	}
	for _, uid := range uids {
		o, err := repo.GetByUID(ctx, uid)
		if err != nil {
			c.logger.Warn("Cache warm-up: order not loaded",
				zap.String("order_uid", uid),
				zap.Error(err),
			)
			continue
		}
		c.Set(o)
	}
	c.logger.Info("Cache warmed", zap.Int("orders", c.lru.Len()))
}

func (c *Orders) Get(uid string) (*domain.Order, bool) {
	order, ok := c.lru.Get(uid)
	if !ok {
		return nil, false
	}
	out := order.Clone()
	return &out, true
}

func (c *Orders) Set(order *domain.Order) {
	c.lru.Add(order.OrderUID, order.Clone())
}

func (c *Orders) Remove(uid string) {
	c.lru.Remove(uid)
}
