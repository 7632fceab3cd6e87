package repository

import (
	"context"

	"github.com/yogswara/gearzone/internal/domain/entity"
)

// CartRepository covers the cart rows touched by login reconciliation.
type CartRepository interface {
	GetBySessionKey(ctx context.Context, sessionKey string) (*entity.Cart, error)
	ItemsByCart(ctx context.Context, cartID string) ([]*entity.CartItem, error)
	ItemsByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	// BumpQuantity atomically increments the item's quantity by one and
	// assigns it to the user in a single UPDATE.
	BumpQuantity(ctx context.Context, itemID, userID string) error
	// ReassignCartToUser moves every item of the cart to the user in one
	// statement, so a crash cannot leave a partial merge behind.
	ReassignCartToUser(ctx context.Context, cartID, userID string) error
}
