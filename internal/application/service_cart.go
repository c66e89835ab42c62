package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
)

// AddToCart upserts a cart line. Quantity replaces any existing line for the
// product; the unit price is snapshotted from the catalog at call time.
func (s *Service) AddToCart(ctx context.Context, actor Actor, input CartAddInput) (domain.Cart, error) {
	if err := requireCustomer(actor); err != nil {
		return domain.Cart{}, err
	}
	if input.ProductID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return domain.Cart{}, err
	}
	if product.Archived {
		return domain.Cart{}, domain.ErrNotFound
	}
	if !product.InStock {
		return domain.Cart{}, domain.ErrOutOfStock
	}

	now := s.nowFn()
	if err := s.carts.UpsertItem(ctx, domain.CartItem{
		CustomerID:     actor.SubjectID,
		ProductID:      product.ProductID,
		ProductName:    product.Name,
		Quantity:       input.Quantity,
		UnitPriceCents: product.PriceCents,
		AddedAt:        now,
		UpdatedAt:      now,
	}); err != nil {
		return domain.Cart{}, err
	}
	return s.GetCart(ctx, actor)
}

func (s *Service) RemoveFromCart(ctx context.Context, actor Actor, productID uuid.UUID) (domain.Cart, error) {
	if err := requireCustomer(actor); err != nil {
		return domain.Cart{}, err
	}
	if productID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if err := s.carts.RemoveItem(ctx, actor.SubjectID, productID); err != nil {
		return domain.Cart{}, err
	}
	return s.GetCart(ctx, actor)
}

func (s *Service) GetCart(ctx context.Context, actor Actor) (domain.Cart, error) {
	if err := requireCustomer(actor); err != nil {
		return domain.Cart{}, err
	}
	items, err := s.carts.ListByCustomer(ctx, actor.SubjectID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart := domain.Cart{CustomerID: actor.SubjectID, Items: items}
	cart.TotalCents = cart.Total()
	return cart, nil
}

func (s *Service) AddToWishlist(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if err := requireCustomer(actor); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.wishlist.Add(ctx, domain.WishlistItem{
		CustomerID: actor.SubjectID,
		ProductID:  productID,
		AddedAt:    s.nowFn(),
	})
}

func (s *Service) RemoveFromWishlist(ctx context.Context, actor Actor, productID uuid.UUID) error {
	if err := requireCustomer(actor); err != nil {
		return err
	}
	return s.wishlist.Remove(ctx, actor.SubjectID, productID)
}

func (s *Service) ListWishlist(ctx context.Context, actor Actor) ([]domain.WishlistItem, error) {
	if err := requireCustomer(actor); err != nil {
		return nil, err
	}
	return s.wishlist.ListByCustomer(ctx, actor.SubjectID)
}
