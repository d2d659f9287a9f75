package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mkarlis/posledger/internal/adapter/http/handler"
	"github.com/mkarlis/posledger/internal/adapter/http/middleware"
	"github.com/mkarlis/posledger/internal/domain"
	"github.com/mkarlis/posledger/internal/infrastructure/auth"
	"github.com/mkarlis/posledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CountingHandler  *handler.CountingHandler
	OrderHandler     *handler.OrderHandler
	PaymentHandler   *handler.PaymentHandler
	SessionHandler   *handler.SessionHandler
	LedgerHandler    *handler.LedgerHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints, outside auth
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Count sheets
		r.Route("/counts", func(r chi.Router) {
			r.Post("/", cfg.CountingHandler.Create)
			r.Get("/", cfg.CountingHandler.List)
			r.Get("/{id}", cfg.CountingHandler.Get)
			r.Post("/{id}/lines", cfg.CountingHandler.AddLine)
			r.Get("/{id}/lines", cfg.CountingHandler.ListLines)

			// Lifecycle transitions need count management rights
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCountManagement)
				r.Post("/{id}/approve", cfg.CountingHandler.Approve)
				r.Post("/{id}/post", cfg.CountingHandler.Post)
				r.Post("/{id}/void", cfg.CountingHandler.Void)
			})
		})

		// Orders and payments
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", cfg.OrderHandler.Create)
			r.Get("/{id}", cfg.OrderHandler.Get)
			r.Post("/{id}/lines", cfg.OrderHandler.AddLine)
			r.Get("/{id}/lines", cfg.OrderHandler.ListLines)
			r.Post("/{id}/discount", cfg.OrderHandler.ApplyDiscount)
			r.Post("/{id}/payments", cfg.PaymentHandler.Capture)
			r.Get("/{id}/payments", cfg.PaymentHandler.List)
			r.Post("/{id}/refunds", cfg.PaymentHandler.Refund)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireCountManagement)
				r.Post("/{id}/void", cfg.OrderHandler.Void)
			})
		})

		// Register sessions
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", cfg.SessionHandler.Open)
			r.Get("/{id}", cfg.SessionHandler.Get)
			r.Post("/{id}/close", cfg.SessionHandler.Close)
			r.Get("/{id}/summary", cfg.SessionHandler.Summary)
			r.Get("/{id}/orders", cfg.OrderHandler.ListBySession)
		})

		// Stock movements
		r.Route("/movements", func(r chi.Router) {
			r.Post("/", cfg.LedgerHandler.RecordMovement)
			r.Get("/", cfg.LedgerHandler.ListEntries)
			r.Get("/correlation/{correlationID}", cfg.LedgerHandler.ListByCorrelation)
		})

		// Balances
		r.Route("/balances", func(r chi.Router) {
			r.Get("/", cfg.LedgerHandler.ListBalances)
			r.Get("/{itemID}/{locationID}", cfg.LedgerHandler.GetBalance)

			// Reorder thresholds are stock policy, not register work
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleManager))
				r.Put("/{itemID}/{locationID}/reorder-point", cfg.LedgerHandler.SetReorderPoint)
			})
		})

		// Projection consistency
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)

		// Audit trail, admin only
		r.Route("/audit", func(r chi.Router) {
			r.Use(middleware.RequireAuditAccess)
			r.Get("/", cfg.AuditHandler.List)
			r.Get("/correlation/{correlationID}", cfg.AuditHandler.GetByCorrelation)
		})
	})

	return r
}
