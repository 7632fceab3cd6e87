package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

type fakeOrderRepo struct {
	orders   []*entity.Order
	products map[string][]*entity.OrderProduct // by order number
}

func (f *fakeOrderRepo) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, o := range f.orders {
		if o.UserID == userID && o.IsOrdered {
			n++
		}
	}
	return n, nil
}

func (f *fakeOrderRepo) ListCompletedByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.UserID == userID && o.IsOrdered {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) ProductsByOrderNumber(ctx context.Context, orderNumber string) ([]*entity.OrderProduct, error) {
	return f.products[orderNumber], nil
}

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func TestOrderDetailComputesSubtotal(t *testing.T) {
	repo := &fakeOrderRepo{
		orders: []*entity.Order{
			{ID: "o-1", UserID: "user-1", OrderNumber: "2026083001", OrderTotal: 135.5, IsOrdered: true},
		},
		products: map[string][]*entity.OrderProduct{
			"2026083001": {
				{ProductName: "keyboard", ProductPrice: 50, Quantity: 2},
				{ProductName: "mouse pad", ProductPrice: 12.5, Quantity: 1},
			},
		},
	}
	svc := NewOrderService(repo)

	d, err := svc.Detail(context.Background(), "user-1", "2026083001")
	require.NoError(t, err)
	assert.Equal(t, 112.5, d.Subtotal)
	assert.Len(t, d.Products, 2)
}

func TestOrderDetailHidesForeignOrders(t *testing.T) {
	repo := &fakeOrderRepo{
		orders: []*entity.Order{
			{ID: "o-1", UserID: "user-1", OrderNumber: "2026083001", IsOrdered: true},
		},
		products: map[string][]*entity.OrderProduct{},
	}
	svc := NewOrderService(repo)

	_, err := svc.Detail(context.Background(), "user-2", "2026083001")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.Detail(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCompletedCount(t *testing.T) {
	repo := &fakeOrderRepo{
		orders: []*entity.Order{
			{UserID: "user-1", OrderNumber: "1", IsOrdered: true},
			{UserID: "user-1", OrderNumber: "2", IsOrdered: false},
			{UserID: "user-2", OrderNumber: "3", IsOrdered: true},
		},
	}
	svc := NewOrderService(repo)

	n, err := svc.CompletedCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
