package domain

import (
	"context"
)

type OrderRepository interface {
	GetByUID(ctx context.Context, uid string) (*Order, error)
	ListActive(ctx context.Context) ([]Order, error)
	RecentOrderUIDs(ctx context.Context, limit int) ([]string, error)
	UpdateStatus(ctx context.Context, uid string, status Status) error
	UpdateBoardColumn(ctx context.Context, uid string, column BoardColumn) error
	ApplyConfirmation(ctx context.Context, c Confirmation) (*Order, error)
	Categories(ctx context.Context) ([]string, error)
}
