// Package event publishes storefront domain events to Kafka. Publishing is
// best effort: services log failures but never fail a customer request
// because the broker is down.
package event

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/kafka"
	"github.com/meridianhome/storefront/pkg/logger"
)

// Event types emitted by the storefront.
const (
	TypeOrderCreated = "storefront.order.created"
	TypeCartUpdated  = "storefront.cart.updated"
	TypeCartCleared  = "storefront.cart.cleared"
)

// Topics the storefront publishes to.
const (
	TopicOrders = "storefront.orders"
	TopicCarts  = "storefront.carts"
)

const source = "storefront"

// Publisher emits domain events. A nil *Publisher is valid and publishes
// nothing, so callers do not branch on whether Kafka is configured.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher wraps a Kafka producer. Pass nil to disable publishing.
func NewPublisher(producer *kafka.Producer, l *slog.Logger) *Publisher {
	if producer == nil {
		return nil
	}
	return &Publisher{producer: producer, logger: l}
}

// OrderCreatedPayload is the data section of an order created event.
type OrderCreatedPayload struct {
	OrderNumber   string          `json:"orderNumber"`
	CustomerEmail string          `json:"customerEmail"`
	PaymentMethod string          `json:"paymentMethod"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	ItemCount     int             `json:"itemCount"`
}

// CartUpdatedPayload is the data section of cart updated and cleared events.
type CartUpdatedPayload struct {
	CartID    string          `json:"cartId"`
	LineCount int             `json:"lineCount"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderCreated publishes an order created event keyed by order ID.
func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) {
	if p == nil {
		return
	}

	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}

	payload := OrderCreatedPayload{
		OrderNumber:   order.OrderNumber,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		Shipping:      order.Shipping,
		Total:         order.Total,
		ItemCount:     count,
	}

	p.publish(ctx, TopicOrders, TypeOrderCreated, order.ID.String(), "order", payload)
}

// CartUpdated publishes a cart updated event keyed by cart ID.
func (p *Publisher) CartUpdated(ctx context.Context, cart domain.Cart) {
	if p == nil {
		return
	}
	p.publish(ctx, TopicCarts, TypeCartUpdated, cart.ID, "cart", cartPayload(cart))
}

// CartCleared publishes a cart cleared event keyed by cart ID.
func (p *Publisher) CartCleared(ctx context.Context, cart domain.Cart) {
	if p == nil {
		return
	}
	p.publish(ctx, TopicCarts, TypeCartCleared, cart.ID, "cart", cartPayload(cart))
}

func cartPayload(cart domain.Cart) CartUpdatedPayload {
	return CartUpdatedPayload{
		CartID:    cart.ID,
		LineCount: len(cart.Lines),
		ItemCount: cart.Count(),
		Subtotal:  cart.Subtotal(),
	}
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, payload any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("aggregate_id", aggregateID),
			slog.String("error", err.Error()),
		)
	}
}
