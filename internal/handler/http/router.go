package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/health"
	"github.com/meridianhome/storefront/pkg/middleware"
)

// RouterConfig carries everything the router needs to assemble the API.
type RouterConfig struct {
	Logger  *slog.Logger
	Catalog *service.CatalogService
	Carts   *service.CartService
	Orders  *service.OrderService
	Health  *health.Handler

	ServiceName    string
	RequestTimeout time.Duration

	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig

	// TracingEnabled mounts the OpenTelemetry span middleware. The tracer
	// provider itself is configured at app startup.
	TracingEnabled bool

	// PprofCIDRs allowlists clients for /debug/pprof. Empty disables pprof.
	PprofCIDRs []string
}

// NewRouter builds the HTTP router with the full middleware chain, the
// versioned API, and the operational endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Operational endpoints sit outside the rate limit.
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if len(cfg.PprofCIDRs) > 0 {
		r.Group(func(r chi.Router) {
			r.Use(middleware.IPAllowlist(cfg.PprofCIDRs))
			middleware.RegisterPprof(r)
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit))
		r.Use(ContentTypeJSON)

		NewProductHandler(cfg.Catalog, cfg.Logger).RegisterRoutes(r)
		NewCategoryHandler(cfg.Catalog, cfg.Logger).RegisterRoutes(r)
		NewCartHandler(cfg.Carts, cfg.Logger).RegisterRoutes(r)
		NewOrderHandler(cfg.Orders, cfg.Logger).RegisterRoutes(r)
	})

	return r
}
