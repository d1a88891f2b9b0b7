// Package app wires the storefront together: config, logging, stores,
// services, event publishing, HTTP server, and graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianhome/storefront/internal/config"
	"github.com/meridianhome/storefront/internal/event"
	handler "github.com/meridianhome/storefront/internal/handler/http"
	"github.com/meridianhome/storefront/internal/repository"
	memoryrepo "github.com/meridianhome/storefront/internal/repository/memory"
	redisrepo "github.com/meridianhome/storefront/internal/repository/redis"
	"github.com/meridianhome/storefront/internal/seed"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/health"
	"github.com/meridianhome/storefront/pkg/kafka"
	"github.com/meridianhome/storefront/pkg/logger"
	"github.com/meridianhome/storefront/pkg/middleware"
	"github.com/meridianhome/storefront/pkg/tracing"
)

// App is the assembled storefront service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server

	redisClient     *redis.Client
	producer        *kafka.Producer
	tracingShutdown func(context.Context) error
}

// New builds the application from configuration. External dependencies
// (Redis, Kafka) are only dialed when configured, so the default setup runs
// with no infrastructure at all.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	l := logger.New(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(l)

	a := &App{cfg: cfg, logger: l}

	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.tracingShutdown = tracingShutdown

	healthHandler := health.NewHandler()

	// Stores. Catalog and orders are in-memory by design; carts are Redis
	// unless configured otherwise.
	products := memoryrepo.NewProductRepository()
	categories := memoryrepo.NewCategoryRepository()
	orders := memoryrepo.NewOrderRepository()

	var cartRepo repository.CartRepository
	if cfg.CartStore == config.CartStoreRedis {
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.redisClient.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}

		healthHandler.Register("redis", func(ctx context.Context) error {
			return a.redisClient.Ping(ctx).Err()
		})

		cartRepo = redisrepo.NewCartRepository(a.redisClient, cfg.CartTTL)
		l.Info("cart store ready", slog.String("backend", "redis"), slog.String("addr", cfg.RedisAddr))
	} else {
		cartRepo = memoryrepo.NewCartRepository()
		l.Info("cart store ready", slog.String("backend", "memory"))
	}

	// Events are optional; without brokers the publisher is nil and all
	// publishes are no-ops.
	var publisher *event.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), l)
		healthHandler.Register("kafka", a.producer.Ping)
		publisher = event.NewPublisher(a.producer, l)
		l.Info("event publishing enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	catalogSvc := service.NewCatalogService(products, categories, l)
	cartSvc := service.NewCartService(cartRepo, products, publisher, l)
	orderSvc := service.NewOrderService(orders, cartRepo, publisher, l)

	if cfg.SeedData {
		if err := seed.Catalog(ctx, catalogSvc, l); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	router := handler.NewRouter(handler.RouterConfig{
		Logger:         l,
		Catalog:        catalogSvc,
		Carts:          cartSvc,
		Orders:         orderSvc,
		Health:         healthHandler,
		ServiceName:    cfg.ServiceName,
		RequestTimeout: cfg.RequestTimeout,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			ExposedHeaders: []string{"X-Correlation-ID"},
			Environment:    cfg.Environment,
		},
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
			CleanupInterval:   time.Minute,
			ClientTTL:         3 * time.Minute,
		},
		TracingEnabled: cfg.TracingEnabled,
		PprofCIDRs:     cfg.PprofCIDRs,
	})

	a.server = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server and blocks until the context is cancelled or
// the server fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.Shutdown()
	}
}

// Shutdown drains in-flight requests and closes external connections.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	var firstErr error

	if err := a.server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("http shutdown: %w", err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("kafka close: %w", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("redis close: %w", err)
		}
	}

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tracing shutdown: %w", err)
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}
