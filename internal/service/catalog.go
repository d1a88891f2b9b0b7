// Package service implements the storefront business logic on top of the
// repository ports. Services validate nothing about HTTP; handlers decode
// and validate request shapes, services enforce domain rules.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/repository"
	"github.com/meridianhome/storefront/pkg/errors"
	"github.com/meridianhome/storefront/pkg/pagination"
	"github.com/meridianhome/storefront/pkg/slug"
)

// CatalogService manages products and categories.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, l *slog.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     l,
	}
}

// CreateProductInput carries the fields for a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	SalePrice   *decimal.Decimal
	Image       string
	Images      []string
	Stock       int
	CategoryID  uuid.UUID
	Featured    bool
}

// CreateProduct adds a product to the catalog. The slug is derived from the
// name.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if !input.Price.IsPositive() {
		return nil, errors.InvalidInput("price must be greater than zero")
	}
	if input.SalePrice != nil && !input.SalePrice.IsPositive() {
		return nil, errors.InvalidInput("salePrice must be greater than zero")
	}

	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		Image:       input.Image,
		Images:      input.Images,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		Featured:    input.Featured,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID.String()),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// GetProduct fetches a product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns a filtered, paginated product listing. A category
// slug in the filter is resolved to an ID first; an unknown slug yields
// NotFound rather than a silently empty page.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.ProductFilter, params pagination.Params) (pagination.Result[domain.Product], error) {
	if filter.CategorySlug != "" {
		category, err := s.categories.GetBySlug(ctx, filter.CategorySlug)
		if err != nil {
			return pagination.Result[domain.Product]{}, err
		}
		filter.CategoryID = &category.ID
	}

	products, total, err := s.products.List(ctx, filter, params)
	if err != nil {
		return pagination.Result[domain.Product]{}, err
	}

	return pagination.NewResult(products, total, params), nil
}

// UpdateProductInput carries a partial product update. Nil fields are left
// unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	SalePrice   *decimal.Decimal
	ClearSale   bool
	Image       *string
	Images      []string
	Stock       *int
	CategoryID  *uuid.UUID
	Featured    *bool
}

// UpdateProduct applies a partial update to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, errors.InvalidInput("price must be greater than zero")
		}
		product.Price = *input.Price
	}
	if input.ClearSale {
		product.SalePrice = nil
	} else if input.SalePrice != nil {
		if !input.SalePrice.IsPositive() {
			return nil, errors.InvalidInput("salePrice must be greater than zero")
		}
		product.SalePrice = input.SalePrice
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id.String()))
	return product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id.String()))
	return nil
}

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Image       string
}

// CreateCategory adds a category with a slug derived from its name.
func (s *CatalogService) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug.Generate(input.Name),
		Description: input.Description,
		Image:       input.Image,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID.String()),
		slog.String("slug", category.Slug),
	)

	return category, nil
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetCategory fetches a category by slug.
func (s *CatalogService) GetCategory(ctx context.Context, slug string) (*domain.Category, error) {
	return s.categories.GetBySlug(ctx, slug)
}
