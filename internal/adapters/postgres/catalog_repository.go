package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nestora/storefront/internal/domain"
)

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	rec := productToModel(product)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, domain.ErrConflict
		}
		return domain.Product{}, err
	}
	return productFromModel(rec), nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	rec := productToModel(product)
	result := r.db.WithContext(ctx).
		Model(&productModel{}).
		Where("product_id = ?", rec.ProductID).
		Updates(map[string]any{
			"name":        rec.Name,
			"category":    rec.Category,
			"description": rec.Description,
			"price_cents": rec.PriceCents,
			"image_urls":  rec.ImageURLs,
			"in_stock":    rec.InStock,
			"archived":    rec.Archived,
			"updated_at":  rec.UpdatedAt,
		})
	if result.Error != nil {
		return domain.Product{}, result.Error
	}
	if result.RowsAffected == 0 {
		return domain.Product{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, product.ProductID)
}

func (r *productRepository) GetByID(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var rec productModel
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	return productFromModel(rec), nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	var rec productModel
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		Where("archived = FALSE").
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	return productFromModel(rec), nil
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	q := r.db.WithContext(ctx).Model(&productModel{}).Where("archived = FALSE")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []productModel
	if err := q.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, productFromModel(row))
	}
	return products, int(total), nil
}

func productToModel(product domain.Product) productModel {
	images := "[]"
	if len(product.ImageURLs) > 0 {
		if raw, err := json.Marshal(product.ImageURLs); err == nil {
			images = string(raw)
		}
	}
	return productModel{
		ProductID:   product.ProductID,
		Name:        product.Name,
		Slug:        product.Slug,
		Category:    product.Category,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Currency:    product.Currency,
		ImageURLs:   images,
		InStock:     product.InStock,
		Archived:    product.Archived,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func productFromModel(rec productModel) domain.Product {
	product := domain.Product{
		ProductID:   rec.ProductID,
		Name:        rec.Name,
		Slug:        rec.Slug,
		Category:    rec.Category,
		Description: rec.Description,
		PriceCents:  rec.PriceCents,
		Currency:    rec.Currency,
		InStock:     rec.InStock,
		Archived:    rec.Archived,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.ImageURLs != "" {
		_ = json.Unmarshal([]byte(rec.ImageURLs), &product.ImageURLs)
	}
	return product
}
