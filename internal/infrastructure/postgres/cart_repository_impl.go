package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yogswara/gearzone/internal/domain/entity"
	"github.com/yogswara/gearzone/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) GetBySessionKey(ctx context.Context, sessionKey string) (*entity.Cart, error) {
	c := &entity.Cart{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, session_key, created_at FROM carts WHERE session_key = $1
	`, sessionKey)
	if err := row.Scan(&c.ID, &c.SessionKey, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CartRepository) ItemsByCart(ctx context.Context, cartID string) ([]*entity.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cart_id, COALESCE(user_id::text, ''), product_id, quantity, is_active, created_at
		FROM cart_items
		WHERE cart_id = $1 AND is_active
		ORDER BY created_at
	`, cartID)
	if err != nil {
		return nil, err
	}
	return r.collectItems(ctx, rows)
}

func (r *CartRepository) ItemsByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, COALESCE(cart_id::text, ''), COALESCE(user_id::text, ''), product_id, quantity, is_active, created_at
		FROM cart_items
		WHERE user_id = $1 AND is_active
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	return r.collectItems(ctx, rows)
}

func (r *CartRepository) collectItems(ctx context.Context, rows pgx.Rows) ([]*entity.CartItem, error) {
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		it := &entity.CartItem{}
		if err := rows.Scan(&it.ID, &it.CartID, &it.UserID, &it.ProductID,
			&it.Quantity, &it.IsActive, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadVariations(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepository) loadVariations(ctx context.Context, items []*entity.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	byID := make(map[string]*entity.CartItem, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
		byID[it.ID] = it
	}
	rows, err := r.pool.Query(ctx, `
		SELECT civ.cart_item_id, v.id, v.category, v.value
		FROM cart_item_variations civ
		JOIN variations v ON v.id = civ.variation_id
		WHERE civ.cart_item_id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var itemID string
		var v entity.Variation
		if err := rows.Scan(&itemID, &v.ID, &v.Category, &v.Value); err != nil {
			return err
		}
		if it, ok := byID[itemID]; ok {
			it.Variations = append(it.Variations, v)
		}
	}
	return rows.Err()
}

// BumpQuantity increments the line by one and claims it for the user in a
// single UPDATE, so two concurrent logins cannot lose an increment.
func (r *CartRepository) BumpQuantity(ctx context.Context, itemID, userID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET quantity = quantity + 1, user_id = $1 WHERE id = $2
	`, userID, itemID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReassignCartToUser claims every remaining item of the anonymous cart for
// the user. One statement, so the move is all-or-nothing.
func (r *CartRepository) ReassignCartToUser(ctx context.Context, cartID, userID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE cart_items SET user_id = $1 WHERE cart_id = $2
	`, userID, cartID)
	return err
}

var _ repository.CartRepository = (*CartRepository)(nil)
