package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/domain"
)

// ListProducts serves the public catalog browse. Archived products are
// filtered out by the repository.
func (s *Service) ListProducts(ctx context.Context, input ListProductsInput) ([]domain.Product, int, error) {
	filter := domain.ProductFilter{
		Category: strings.ToLower(strings.TrimSpace(input.Category)),
		Search:   strings.TrimSpace(input.Search),
	}
	filter.Page, filter.PageSize = normalizePaging(input.Page, input.PageSize)
	return s.products.List(ctx, filter)
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Product{}, fmt.Errorf("%w: product slug is required", domain.ErrInvalidInput)
	}
	return s.products.GetBySlug(ctx, slug)
}

func (s *Service) CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Product{}, err
	}
	now := s.nowFn()
	product := domain.Product{
		ProductID:   uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Slug:        slugify(input.Slug),
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Description: strings.TrimSpace(input.Description),
		PriceCents:  input.PriceCents,
		Currency:    s.cfg.Currency,
		ImageURLs:   input.ImageURLs,
		InStock:     input.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := domain.ValidateProduct(product); err != nil {
		return domain.Product{}, err
	}
	return s.products.Create(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, actor Actor, input UpdateProductInput) (domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Product{}, err
	}
	if input.ProductID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return domain.Product{}, err
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		product.Category = strings.ToLower(strings.TrimSpace(*input.Category))
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURLs != nil {
		product.ImageURLs = input.ImageURLs
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Archived != nil {
		product.Archived = *input.Archived
	}
	product.UpdatedAt = s.nowFn()
	if err := domain.ValidateProduct(product); err != nil {
		return domain.Product{}, err
	}
	return s.products.Update(ctx, product)
}

func slugify(raw string) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
