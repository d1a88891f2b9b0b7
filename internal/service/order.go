package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/event"
	"github.com/meridianhome/storefront/internal/repository"
	"github.com/meridianhome/storefront/pkg/errors"
)

// OrderService turns carts into orders and serves invoice lookups.
type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	publisher *event.Publisher
	logger    *slog.Logger

	// now is injected so order numbers and timestamps are deterministic in
	// tests. Defaults to time.Now.
	now func() time.Time
}

// NewOrderService creates an order service using the wall clock.
func NewOrderService(orders repository.OrderRepository, carts repository.CartRepository, publisher *event.Publisher, l *slog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		publisher: publisher,
		logger:    l,
		now:       time.Now,
	}
}

// WithClock replaces the clock. Intended for tests.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// CreateOrderInput is the checkout form plus the totals the client displayed
// to the shopper. The declared totals are recomputed server-side and the
// order is rejected if they disagree, so a stale or tampered client can
// never buy at the wrong price.
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	CustomerCity    string
	CustomerZip     string
	CustomerCountry string
	PaymentMethod   string
	Subtotal        decimal.Decimal
	Shipping        decimal.Decimal
	Total           decimal.Decimal
}

// CreateOrder places an order for the cart's current contents. The cart is
// cleared once the order is persisted.
func (s *OrderService) CreateOrder(ctx context.Context, cartID string, input CreateOrderInput) (*domain.Order, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, errors.InvalidInput("cart is empty")
	}

	subtotal := cart.Subtotal()
	shipping := domain.ShippingFor(subtotal)
	total := subtotal.Add(shipping)

	if !input.Subtotal.Equal(subtotal) {
		return nil, errors.InvalidInput(fmt.Sprintf("subtotal mismatch: declared %s, cart total is %s", input.Subtotal, subtotal))
	}
	if !input.Shipping.Equal(shipping) {
		return nil, errors.InvalidInput(fmt.Sprintf("shipping mismatch: declared %s, expected %s", input.Shipping, shipping))
	}
	if !input.Total.Equal(total) {
		return nil, errors.InvalidInput(fmt.Sprintf("total mismatch: declared %s, expected %s", input.Total, total))
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:              uuid.New(),
		OrderNumber:     domain.OrderNumber(now),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerAddress: input.CustomerAddress,
		CustomerCity:    input.CustomerCity,
		CustomerZip:     input.CustomerZip,
		CustomerCountry: input.CustomerCountry,
		PaymentMethod:   input.PaymentMethod,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           total,
		Status:          domain.OrderStatusProcessing,
		CreatedAt:       now,
	}

	order.Items = make([]domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Price:        line.Price,
			Quantity:     line.Quantity,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// The order owns the snapshot now; an error clearing the cart is worth a
	// log line but not a failed checkout.
	if err := s.carts.Delete(ctx, cartID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			slog.String("cart_id", cartID),
			slog.String("error", err.Error()),
		)
	}

	s.publisher.OrderCreated(ctx, order)

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_number", order.OrderNumber),
		slog.String("total", order.Total.String()),
		slog.Int("items", len(order.Items)),
	)

	return order, nil
}

// GetOrderByNumber returns the order with its items, or NotFound.
func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.orders.GetByNumber(ctx, orderNumber)
}
