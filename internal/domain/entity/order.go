package entity

import "time"

// Order is read-only here; it is created and mutated by the checkout flow.
type Order struct {
	ID          string
	UserID      string
	OrderNumber string
	OrderTotal  float64
	Tax         float64
	Status      string
	IsOrdered   bool
	CreatedAt   time.Time
}

// OrderProduct is a purchased line on a completed order.
type OrderProduct struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	ProductPrice float64
	Quantity     int
}
