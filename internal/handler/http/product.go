// Package http exposes the storefront over a chi REST API using the standard
// {data,error} response envelope.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/errors"
	"github.com/meridianhome/storefront/pkg/httputil"
	"github.com/meridianhome/storefront/pkg/pagination"
	"github.com/meridianhome/storefront/pkg/validator"
)

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a product handler.
func NewProductHandler(catalog *service.CatalogService, l *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: l}
}

// RegisterRoutes mounts the product routes on the given router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       string   `json:"price" validate:"required"`
	SalePrice   string   `json:"salePrice"`
	Image       string   `json:"image" validate:"omitempty,max=500"`
	Images      []string `json:"images" validate:"dive,max=500"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
	Featured    bool     `json:"featured"`
}

type productResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	SalePrice   *string  `json:"salePrice,omitempty"`
	Image       string   `json:"image"`
	Images      []string `json:"images,omitempty"`
	Stock       int      `json:"stock"`
	CategoryID  string   `json:"categoryId"`
	Featured    bool     `json:"featured"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Image:       p.Image,
		Images:      p.Images,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID.String(),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt:   p.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if p.SalePrice != nil {
		s := p.SalePrice.StringFixed(2)
		resp.SalePrice = &s
	}
	return resp
}

// List handles GET /products with search, category, price range, featured,
// and pagination query parameters.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Search:       q.Get("q"),
		CategorySlug: q.Get("category"),
		Featured:     q.Get("featured") == "true",
	}

	if raw := q.Get("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			httputil.WriteError(w, r, errors.InvalidInput("min_price must be a decimal number"), h.logger)
			return
		}
		filter.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			httputil.WriteError(w, r, errors.InvalidInput("max_price must be a decimal number"), h.logger)
			return
		}
		filter.MaxPrice = &v
	}

	result, err := h.catalog.ListProducts(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	out := pagination.Result[productResponse]{
		Data:       make([]productResponse, 0, len(result.Data)),
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PerPage:    result.PerPage,
		TotalPages: result.TotalPages,
		HasNext:    result.HasNext,
		HasPrev:    result.HasPrev,
	}
	for _, p := range result.Data {
		out.Data = append(out.Data, toProductResponse(p))
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: out})
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toProductResponse(*product)})
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: toProductResponse(*product)})
}

func (req createProductRequest) toInput() (service.CreateProductInput, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return service.CreateProductInput{}, errors.InvalidInput("price must be a decimal number")
	}

	input := service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}

	if req.SalePrice != "" {
		sale, err := decimal.NewFromString(req.SalePrice)
		if err != nil {
			return service.CreateProductInput{}, errors.InvalidInput("salePrice must be a decimal number")
		}
		input.SalePrice = &sale
	}

	// The uuid tag already validated the format.
	input.CategoryID = uuid.MustParse(req.CategoryID)

	return input, nil
}

type updateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	Price       *string  `json:"price"`
	SalePrice   *string  `json:"salePrice"`
	Image       *string  `json:"image" validate:"omitempty,max=500"`
	Images      []string `json:"images" validate:"dive,max=500"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
	Featured    *bool    `json:"featured"`
}

// Update handles PUT /products/{id}. Absent fields keep their values; an
// explicit empty salePrice string clears the sale.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req updateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			httputil.WriteError(w, r, errors.InvalidInput("price must be a decimal number"), h.logger)
			return
		}
		input.Price = &price
	}
	if req.SalePrice != nil {
		if *req.SalePrice == "" {
			input.ClearSale = true
		} else {
			sale, err := decimal.NewFromString(*req.SalePrice)
			if err != nil {
				httputil.WriteError(w, r, errors.InvalidInput("salePrice must be a decimal number"), h.logger)
				return
			}
			input.SalePrice = &sale
		}
	}
	if req.CategoryID != nil {
		input.CategoryID = new(uuid.UUID)
		*input.CategoryID = uuid.MustParse(*req.CategoryID)
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toProductResponse(*product)})
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
