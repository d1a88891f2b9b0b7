package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/errors"
)

// OrderRepository is an in-memory order store. Orders and their items are
// written under one lock acquisition, so a concurrent reader either sees the
// whole order or nothing.
type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]domain.Order
	byNumber map[string]uuid.UUID
}

// NewOrderRepository creates an empty in-memory order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders:   make(map[uuid.UUID]domain.Order),
		byNumber: make(map[string]uuid.UUID),
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byNumber[order.OrderNumber]; ok {
		return errors.AlreadyExists("order", "orderNumber", order.OrderNumber)
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}

	stored := *order
	stored.Items = make([]domain.OrderItem, len(order.Items))
	copy(stored.Items, order.Items)

	r.orders[stored.ID] = stored
	r.byNumber[stored.OrderNumber] = stored.ID
	return nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byNumber[orderNumber]
	if !ok {
		return nil, errors.NotFound("order", orderNumber)
	}

	o := r.orders[id]
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return &o, nil
}
