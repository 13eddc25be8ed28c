package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yamori/ammoledger/internal/adapter/http/handler"
	"github.com/yamori/ammoledger/internal/adapter/http/middleware"
	"github.com/yamori/ammoledger/internal/infrastructure/metrics"
	"github.com/yamori/ammoledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EventHandler     *handler.EventHandler
	TypeHandler      *handler.TypeHandler
	BalanceHandler   *handler.BalanceHandler
	IntegrityHandler *handler.IntegrityHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler

	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ammunition types
		r.Route("/types", func(r chi.Router) {
			r.Post("/", cfg.TypeHandler.Create)
			r.Get("/", cfg.TypeHandler.List)
			r.Get("/{id}", cfg.TypeHandler.Get)
			r.Patch("/{id}", cfg.TypeHandler.Update)
		})

		// Ledger events
		r.Route("/events", func(r chi.Router) {
			r.Post("/", cfg.EventHandler.Append)
			r.Get("/", cfg.EventHandler.List)
			r.Get("/{id}", cfg.EventHandler.Get)
			r.Post("/{id}/correct", cfg.EventHandler.Correct)
		})

		// Balances
		r.Route("/balances", func(r chi.Router) {
			r.Get("/", cfg.BalanceHandler.All)
			r.Get("/{typeID}", cfg.BalanceHandler.Current)
			r.Get("/{typeID}/at", cfg.BalanceHandler.AtDate)
			r.Get("/{typeID}/history", cfg.BalanceHandler.History)
		})

		// Integrity
		r.Get("/integrity", cfg.IntegrityHandler.Verify)

		// Audit trail
		r.Get("/audit", cfg.AuditHandler.List)
	})

	return r
}
