package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/httputil"
	"github.com/meridianhome/storefront/pkg/validator"
)

// CartHandler serves the cart endpoints. All routes require the X-Cart-ID
// header; the router wraps them with CartIDFromHeader.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(carts *service.CartService, l *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: l}
}

// RegisterRoutes mounts the cart routes on the given router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(CartIDFromHeader)
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productId}", h.SetQuantity)
		r.Delete("/items/{productId}", h.RemoveItem)
	})
}

type cartLineResponse struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	ProductImage string `json:"productImage"`
	Price        string `json:"price"`
	Quantity     int    `json:"quantity"`
}

type cartResponse struct {
	ID       string             `json:"id"`
	Items    []cartLineResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Count    int                `json:"count"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := make([]cartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, cartLineResponse{
			ProductID:    l.ProductID.String(),
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			Price:        l.Price.StringFixed(2),
			Quantity:     l.Quantity,
		})
	}
	return cartResponse{
		ID:       c.ID,
		Items:    items,
		Subtotal: c.Subtotal().StringFixed(2),
		Count:    c.Count(),
	}
}

// Get handles GET /cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), CartID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), CartID(r.Context()), uuid.MustParse(req.ProductID), req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// SetQuantity handles PUT /cart/items/{productId}. Quantity zero removes
// the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req setQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.SetItemQuantity(r.Context(), CartID(r.Context()), productID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

// RemoveItem handles DELETE /cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), CartID(r.Context()), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.ClearCart(r.Context(), CartID(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toCartResponse(cart)})
}
