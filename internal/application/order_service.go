package application

import (
	"context"
	"errors"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService exposes the read models for the dashboard and order history.
// Orders are written by the checkout flow, never here.
type OrderService struct {
	Repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{Repo: repo}
}

func (s *OrderService) CompletedCount(ctx context.Context, userID string) (int, error) {
	return s.Repo.CountCompletedByUser(ctx, userID)
}

// History lists the user's completed orders, newest first.
func (s *OrderService) History(ctx context.Context, userID string) ([]*entity.Order, error) {
	return s.Repo.ListCompletedByUser(ctx, userID)
}

type OrderDetail struct {
	Order    *entity.Order
	Products []*entity.OrderProduct
	Subtotal float64
}

// Detail returns the order, its product lines, and the line subtotal. A user
// can only see their own orders.
func (s *OrderService) Detail(ctx context.Context, userID, orderNumber string) (*OrderDetail, error) {
	o, err := s.Repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	products, err := s.Repo.ProductsByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	subtotal := 0.0
	for _, p := range products {
		subtotal += p.ProductPrice * float64(p.Quantity)
	}
	return &OrderDetail{Order: o, Products: products, Subtotal: subtotal}, nil
}
