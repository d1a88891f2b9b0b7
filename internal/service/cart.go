package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/event"
	"github.com/meridianhome/storefront/internal/repository"
	"github.com/meridianhome/storefront/pkg/errors"
)

// CartService manages shopper carts. Every mutation loads the cart, applies
// the reducer, and saves the result, so the persisted cart is always the
// output of a pure transition and read-your-writes holds per cart ID.
type CartService struct {
	carts     repository.CartRepository
	products  repository.ProductRepository
	publisher *event.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewCartService creates a cart service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, publisher *event.Publisher, l *slog.Logger) *CartService {
	return &CartService{
		carts:     carts,
		products:  products,
		publisher: publisher,
		logger:    l,
		now:       time.Now,
	}
}

// GetCart returns the cart for the given ID, empty if none exists.
func (s *CartService) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.carts.Get(ctx, cartID)
}

// AddItem looks up the product, snapshots its display fields and effective
// price into a line, and merges it into the cart.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return domain.Cart{}, errors.InvalidInput("quantity must be at least 1")
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	line := domain.CartLine{
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductImage: product.Image,
		Price:        product.EffectivePrice(),
		Quantity:     quantity,
	}

	return s.apply(ctx, cartID, domain.AddItem{Line: line})
}

// SetItemQuantity replaces the quantity of a line. Zero removes the line.
func (s *CartService) SetItemQuantity(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (domain.Cart, error) {
	if quantity < 0 {
		return domain.Cart{}, errors.InvalidInput("quantity must not be negative")
	}
	return s.apply(ctx, cartID, domain.SetQuantity{ProductID: productID, Quantity: quantity})
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (domain.Cart, error) {
	return s.apply(ctx, cartID, domain.RemoveItem{ProductID: productID})
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.apply(ctx, cartID, domain.Clear{})
	if err != nil {
		return domain.Cart{}, err
	}
	s.publisher.CartCleared(ctx, cart)
	return cart, nil
}

func (s *CartService) apply(ctx context.Context, cartID string, cmd domain.Command) (domain.Cart, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}

	next := domain.Apply(cart, cmd)
	next.UpdatedAt = s.now().UTC()

	if err := s.carts.Save(ctx, next); err != nil {
		return domain.Cart{}, err
	}

	if _, cleared := cmd.(domain.Clear); !cleared {
		s.publisher.CartUpdated(ctx, next)
	}

	s.logger.DebugContext(ctx, "cart updated",
		slog.String("cart_id", cartID),
		slog.Int("lines", len(next.Lines)),
		slog.Int("count", next.Count()),
	)

	return next, nil
}
