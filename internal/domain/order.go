package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodCOD    = "cod"
)

// OrderStatusProcessing is the status every new order is created with.
const OrderStatusProcessing = "processing"

// FreeShippingThreshold is the subtotal at or above which shipping is free.
var FreeShippingThreshold = decimal.NewFromInt(50)

// FlatShippingRate is charged on orders below the free shipping threshold.
var FlatShippingRate = decimal.NewFromInt(10)

// ShippingFor returns the shipping charge for the given subtotal.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingRate
}

// Order is a placed order together with its frozen pricing.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	CustomerCity    string          `json:"customerCity"`
	CustomerZip     string          `json:"customerZip"`
	CustomerCountry string          `json:"customerCountry"`
	PaymentMethod   string          `json:"paymentMethod"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderItem is a line of a placed order. Like cart lines, name, image, and
// price are snapshots frozen at checkout time.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	ProductID    uuid.UUID       `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// OrderNumber derives the human-facing order number from the creation time.
func OrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%d", t.UnixMilli())
}
