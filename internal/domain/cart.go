package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a customer's cart. The unit price is snapshotted
// at add time so a later catalog price change does not silently reprice it.
type CartItem struct {
	CustomerID     string    `json:"customer_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	AddedAt        time.Time `json:"added_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Cart is the full cart view returned to the storefront.
type Cart struct {
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
}

// WishlistItem marks a product a customer saved for later.
type WishlistItem struct {
	CustomerID string    `json:"customer_id"`
	ProductID  uuid.UUID `json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
}

// Total recomputes the cart total from its lines.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}
