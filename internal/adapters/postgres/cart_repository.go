package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nestora/storefront/internal/domain"
)

type cartRepository struct {
	db *gorm.DB
}

func (r *cartRepository) UpsertItem(ctx context.Context, item domain.CartItem) error {
	rec := cartItemModel{
		CustomerID:     item.CustomerID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPriceCents,
		AddedAt:        item.AddedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_name", "quantity", "unit_price_cents", "updated_at",
			}),
		}).
		Create(&rec).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, customerID string, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("product_id = ?", productID).
		Delete(&cartItemModel{}).Error
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.CartItem, error) {
	var rows []cartItemModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("added_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.CartItem{
			CustomerID:     row.CustomerID,
			ProductID:      row.ProductID,
			ProductName:    row.ProductName,
			Quantity:       row.Quantity,
			UnitPriceCents: row.UnitPriceCents,
			AddedAt:        row.AddedAt,
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return items, nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID string) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&cartItemModel{}).Error
}

type wishlistRepository struct {
	db *gorm.DB
}

func (r *wishlistRepository) Add(ctx context.Context, item domain.WishlistItem) error {
	rec := wishlistItemModel{
		CustomerID: item.CustomerID,
		ProductID:  item.ProductID,
		AddedAt:    item.AddedAt,
	}
	// Re-adding an already saved product is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).Error
}

func (r *wishlistRepository) Remove(ctx context.Context, customerID string, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("product_id = ?", productID).
		Delete(&wishlistItemModel{}).Error
}

func (r *wishlistRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistItem, error) {
	var rows []wishlistItemModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("added_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]domain.WishlistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.WishlistItem{
			CustomerID: row.CustomerID,
			ProductID:  row.ProductID,
			AddedAt:    row.AddedAt,
		})
	}
	return items, nil
}
