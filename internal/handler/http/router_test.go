package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/repository/memory"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/health"
	"github.com/meridianhome/storefront/pkg/middleware"
)

type testServer struct {
	handler  http.Handler
	products *memory.ProductRepository
	orders   *memory.OrderRepository
	carts    *memory.CartRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	products := memory.NewProductRepository()
	categories := memory.NewCategoryRepository()
	orders := memory.NewOrderRepository()
	carts := memory.NewCartRepository()

	catalogSvc := service.NewCatalogService(products, categories, l)
	cartSvc := service.NewCartService(carts, products, nil, l)
	orderSvc := service.NewOrderService(orders, carts, nil, l).
		WithClock(func() time.Time { return time.UnixMilli(1700000000123) })

	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = 1000
	rl.Burst = 1000

	handler := NewRouter(RouterConfig{
		Logger:         l,
		Catalog:        catalogSvc,
		Carts:          cartSvc,
		Orders:         orderSvc,
		Health:         health.NewHandler(),
		ServiceName:    "storefront-test",
		RequestTimeout: 5 * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
		RateLimit:      rl,
	})

	return &testServer{
		handler:  handler,
		products: products,
		orders:   orders,
		carts:    carts,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (ts *testServer) seedProduct(t *testing.T, name, price string) *domain.Product {
	t.Helper()

	p := &domain.Product{
		Name:  name,
		Slug:  nameToSlug(name),
		Price: decimal.RequireFromString(price),
		Image: "/img/" + nameToSlug(name) + ".jpg",
	}
	require.NoError(t, ts.products.Create(context.Background(), p))
	return p
}

func nameToSlug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health/live", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/health/ready", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
