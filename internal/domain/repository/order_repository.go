package repository

import (
	"context"

	"github.com/yogswara/gearzone/internal/domain/entity"
)

// OrderRepository is read-only from this service; orders are written by the
// checkout flow.
type OrderRepository interface {
	CountCompletedByUser(ctx context.Context, userID string) (int, error)
	ListCompletedByUser(ctx context.Context, userID string) ([]*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	ProductsByOrderNumber(ctx context.Context, orderNumber string) ([]*entity.OrderProduct, error)
}
