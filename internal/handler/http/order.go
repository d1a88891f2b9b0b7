package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/errors"
	"github.com/meridianhome/storefront/pkg/httputil"
	"github.com/meridianhome/storefront/pkg/validator"
)

// OrderHandler serves checkout and invoice lookup.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders *service.OrderService, l *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: l}
}

// RegisterRoutes mounts the order routes on the given router. Checkout needs
// the cart header; lookup by order number does not.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.With(CartIDFromHeader).Post("/", h.Create)
		r.Get("/{orderNumber}", h.Get)
	})
}

type createOrderRequest struct {
	CustomerName    string `json:"customerName" validate:"required,min=2,max=200"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerAddress string `json:"customerAddress" validate:"required,max=500"`
	CustomerCity    string `json:"customerCity" validate:"required,max=100"`
	CustomerZip     string `json:"customerZip" validate:"required,max=20"`
	CustomerCountry string `json:"customerCountry" validate:"required,max=100"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=card paypal cod"`
	Subtotal        string `json:"subtotal" validate:"required"`
	Shipping        string `json:"shipping" validate:"required"`
	Total           string `json:"total" validate:"required"`
}

type orderItemResponse struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

type orderResponse struct {
	OrderNumber     string              `json:"orderNumber"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerAddress string              `json:"customerAddress"`
	CustomerCity    string              `json:"customerCity"`
	CustomerZip     string              `json:"customerZip"`
	CustomerCountry string              `json:"customerCountry"`
	PaymentMethod   string              `json:"paymentMethod"`
	Subtotal        string              `json:"subtotal"`
	Shipping        string              `json:"shipping"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items,omitempty"`
	CreatedAt       string              `json:"createdAt"`
}

func toOrderResponse(o domain.Order, withItems bool) orderResponse {
	resp := orderResponse{
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CustomerCity:    o.CustomerCity,
		CustomerZip:     o.CustomerZip,
		CustomerCountry: o.CustomerCountry,
		PaymentMethod:   o.PaymentMethod,
		Subtotal:        o.Subtotal.StringFixed(2),
		Shipping:        o.Shipping.StringFixed(2),
		Total:           o.Total.StringFixed(2),
		Status:          o.Status,
		CreatedAt:       o.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if withItems {
		resp.Items = make([]orderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			resp.Items = append(resp.Items, orderItemResponse{
				ProductID:    item.ProductID.String(),
				ProductName:  item.ProductName,
				ProductImage: item.ProductImage,
				Price:        item.Price.StringFixed(2),
				Quantity:     item.Quantity,
			})
		}
	}
	return resp
}

// Create handles POST /orders: validates the checkout form as a whole so the
// client gets every violated field at once, then places the order for the
// cart named by X-Cart-ID.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerZip:     req.CustomerZip,
		CustomerCountry: req.CustomerCountry,
		PaymentMethod:   req.PaymentMethod,
	}

	var err error
	if input.Subtotal, err = decimal.NewFromString(req.Subtotal); err != nil {
		httputil.WriteError(w, r, errors.InvalidInput("subtotal must be a decimal number"), h.logger)
		return
	}
	if input.Shipping, err = decimal.NewFromString(req.Shipping); err != nil {
		httputil.WriteError(w, r, errors.InvalidInput("shipping must be a decimal number"), h.logger)
		return
	}
	if input.Total, err = decimal.NewFromString(req.Total); err != nil {
		httputil.WriteError(w, r, errors.InvalidInput("total must be a decimal number"), h.logger)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), CartID(r.Context()), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: toOrderResponse(*order, false)})
}

// Get handles GET /orders/{orderNumber}, returning the order with its items.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrderByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toOrderResponse(*order, true)})
}
