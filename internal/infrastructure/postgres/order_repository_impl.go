package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders WHERE user_id = $1 AND is_ordered
	`, userID).Scan(&n)
	return n, err
}

func (r *OrderRepository) ListCompletedByUser(ctx context.Context, userID string) ([]*entity.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, order_number, order_total, tax, status, is_ordered, created_at
		FROM orders
		WHERE user_id = $1 AND is_ordered
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		o := &entity.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.OrderTotal,
			&o.Tax, &o.Status, &o.IsOrdered, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	o := &entity.Order{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, order_number, order_total, tax, status, is_ordered, created_at
		FROM orders
		WHERE order_number = $1
	`, orderNumber)
	if err := row.Scan(&o.ID, &o.UserID, &o.OrderNumber, &o.OrderTotal,
		&o.Tax, &o.Status, &o.IsOrdered, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ProductsByOrderNumber(ctx context.Context, orderNumber string) ([]*entity.OrderProduct, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT op.id, op.order_id, op.product_id, op.product_name, op.product_price, op.quantity
		FROM order_products op
		JOIN orders o ON o.id = op.order_id
		WHERE o.order_number = $1
	`, orderNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.OrderProduct
	for rows.Next() {
		p := &entity.OrderProduct{}
		if err := rows.Scan(&p.ID, &p.OrderID, &p.ProductID, &p.ProductName,
			&p.ProductPrice, &p.Quantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
