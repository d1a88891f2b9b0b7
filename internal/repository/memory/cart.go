package memory

import (
	"context"
	"sync"

	"github.com/meridianhome/storefront/internal/domain"
)

// CartRepository is an in-memory cart store. It is the default cart backend;
// the redis implementation is used when carts must survive restarts.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartRepository creates an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]domain.Cart),
	}
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[cartID]
	if !ok {
		return domain.NewCart(cartID), nil
	}

	lines := make([]domain.CartLine, len(c.Lines))
	copy(lines, c.Lines)
	c.Lines = lines
	return c, nil
}

func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cart
	stored.Lines = make([]domain.CartLine, len(cart.Lines))
	copy(stored.Lines, cart.Lines)

	r.carts[cart.ID] = stored
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
