package entity

import (
	"sort"
	"strings"
	"time"
)

// Cart is keyed by an anonymous browser session before login. After a merge
// the row stays behind but nothing reads it anymore.
type Cart struct {
	ID         string
	SessionKey string
	CreatedAt  time.Time
}

// Variation is a selected product option such as size or color.
type Variation struct {
	ID       string
	Category string
	Value    string
}

// CartItem is a single cart line. Ownership is either the anonymous cart
// (CartID) or a user (UserID) once reconciliation has run.
type CartItem struct {
	ID         string
	CartID     string
	UserID     string // empty until the item is claimed by a user
	ProductID  string
	Quantity   int
	Variations []Variation
	IsActive   bool
	CreatedAt  time.Time
}

// LineKey identifies a cart line: product plus the exact set of variations,
// order-independent.
func (i *CartItem) LineKey() string {
	ids := make([]string, 0, len(i.Variations))
	for _, v := range i.Variations {
		ids = append(ids, v.ID)
	}
	sort.Strings(ids)
	return i.ProductID + "|" + strings.Join(ids, ",")
}
