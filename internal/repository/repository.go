// Package repository defines the persistence ports the services depend on.
// Implementations live in subpackages; services receive them by injection so
// tests can substitute mocks and the backing store can change without
// touching business logic.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/pagination"
)

// ProductRepository stores catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter, params pagination.Params) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository stores catalog categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// OrderRepository stores placed orders. Create persists the order and all of
// its items as one unit; partial writes must never be observable.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}

// CartRepository stores carts keyed by cart ID. Get returns an empty cart,
// not an error, when no cart exists for the ID.
type CartRepository interface {
	Get(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}
