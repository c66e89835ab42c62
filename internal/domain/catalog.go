package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Product is a home-furnishing catalog entry.
type Product struct {
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	InStock     bool      `json:"in_stock"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductFilter narrows public catalog listings.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// ValidateProduct checks admin-supplied catalog fields before persistence.
func ValidateProduct(p Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Slug == "" {
		return fmt.Errorf("%w: product slug is required", ErrInvalidInput)
	}
	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
