package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/errors"
)

// CategoryRepository is an in-memory category store with a slug index.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]domain.Category
	bySlug     map[string]uuid.UUID
}

// NewCategoryRepository creates an empty in-memory category store.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[uuid.UUID]domain.Category),
		bySlug:     make(map[string]uuid.UUID),
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[category.Slug]; ok {
		return errors.AlreadyExists("category", "slug", category.Slug)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	category.CreatedAt = time.Now().UTC()

	r.categories[category.ID] = *category
	r.bySlug[category.Slug] = category.ID
	return nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return nil, errors.NotFound("category", slug)
	}
	c := r.categories[id]
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
