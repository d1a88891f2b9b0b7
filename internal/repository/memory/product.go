// Package memory provides in-memory repository implementations backed by
// mutex-guarded maps. This is the default backend; it trades durability for
// zero external dependencies, which suits demos and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/errors"
	"github.com/meridianhome/storefront/pkg/pagination"
)

// ProductRepository is an in-memory product store.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

// NewProductRepository creates an empty in-memory product store.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for _, p := range r.products {
		if p.Slug == product.Slug {
			return errors.AlreadyExists("product", "slug", product.Slug)
		}
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, errors.NotFound("product", id.String())
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, params pagination.Params) ([]domain.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	// Map iteration order is random; sort for stable pages.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.PerPage
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return errors.NotFound("product", product.ID.String())
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	r.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return errors.NotFound("product", id.String())
	}
	delete(r.products, id)
	return nil
}
