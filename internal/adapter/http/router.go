package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/budgeteer/internal/adapter/http/handler"
	"github.com/iho/budgeteer/internal/adapter/http/middleware"
	"github.com/iho/budgeteer/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	BudgetHandler      *handler.BudgetHandler
	AccountHandler     *handler.AccountHandler
	CategoryHandler    *handler.CategoryHandler
	CreditCardHandler  *handler.CreditCardHandler
	TransactionHandler *handler.TransactionHandler
	TransferHandler    *handler.TransferHandler
	BillPaymentHandler *handler.BillPaymentHandler
	GoalHandler        *handler.GoalHandler
	EnvelopeHandler    *handler.EnvelopeHandler
	HealthHandler      *handler.HealthHandler
	RateLimiter        *middleware.RateLimiter
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	Cache              usecase.Cache
	CacheTTL           time.Duration
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Collection reads are cheap to serve stale for a few seconds
	cached := func(h http.HandlerFunc) http.HandlerFunc {
		return h
	}
	if cfg.Cache != nil {
		cacheMiddleware := middleware.NewCacheMiddleware(cfg.Cache, cfg.CacheTTL)
		cached = func(h http.HandlerFunc) http.HandlerFunc {
			return cacheMiddleware.Wrap(h).ServeHTTP
		}
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Budgets
		r.Route("/budgets", func(r chi.Router) {
			r.Post("/", cfg.BudgetHandler.Create)
			r.Get("/", cached(cfg.BudgetHandler.List))
			r.Get("/{id}", cfg.BudgetHandler.Get)
			r.Put("/{id}/name", cfg.BudgetHandler.Rename)
			r.Post("/{id}/participants", cfg.BudgetHandler.AddParticipant)
			r.Delete("/{id}/participants/{participantID}", cfg.BudgetHandler.RemoveParticipant)
			r.Delete("/{id}", cfg.BudgetHandler.Delete)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cached(cfg.AccountHandler.List))
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Patch("/{id}", cfg.AccountHandler.Update)
			r.Post("/{id}/reconcile", cfg.AccountHandler.Reconcile)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", cfg.CategoryHandler.Create)
			r.Get("/", cached(cfg.CategoryHandler.List))
			r.Get("/{id}", cfg.CategoryHandler.Get)
			r.Put("/{id}/name", cfg.CategoryHandler.Rename)
			r.Delete("/{id}", cfg.CategoryHandler.Delete)
		})

		// Credit cards
		r.Route("/credit-cards", func(r chi.Router) {
			r.Post("/", cfg.CreditCardHandler.Create)
			r.Get("/", cached(cfg.CreditCardHandler.List))
			r.Get("/{id}", cfg.CreditCardHandler.Get)
			r.Patch("/{id}", cfg.CreditCardHandler.Update)
			r.Delete("/{id}", cfg.CreditCardHandler.Delete)
			r.Post("/{id}/bills", cfg.CreditCardHandler.OpenBill)
			r.Get("/{id}/bills", cfg.CreditCardHandler.ListBills)
		})

		// Bills
		r.Route("/bills", func(r chi.Router) {
			r.Get("/{id}", cfg.CreditCardHandler.GetBill)
			r.Post("/{id}/charges", cfg.CreditCardHandler.AddCharge)
			r.Post("/{id}/close", cfg.CreditCardHandler.CloseBill)
			r.Post("/{id}/reopen", cfg.CreditCardHandler.ReopenBill)
			r.Post("/{id}/pay", cfg.BillPaymentHandler.Pay)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cached(cfg.TransactionHandler.List))
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/complete", cfg.TransactionHandler.Complete)
			r.Post("/{id}/cancel", cfg.TransactionHandler.Cancel)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Transfers
		r.Post("/transfers", cfg.TransferHandler.Create)

		// Goals
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", cfg.GoalHandler.Create)
			r.Get("/", cached(cfg.GoalHandler.List))
			r.Get("/{id}", cfg.GoalHandler.Get)
			r.Put("/{id}/name", cfg.GoalHandler.Rename)
			r.Post("/{id}/reserve", cfg.GoalHandler.Reserve)
			r.Post("/{id}/release", cfg.GoalHandler.Release)
			r.Delete("/{id}", cfg.GoalHandler.Delete)
		})

		// Envelopes
		r.Route("/envelopes", func(r chi.Router) {
			r.Post("/", cfg.EnvelopeHandler.Create)
			r.Get("/", cached(cfg.EnvelopeHandler.List))
			r.Get("/{id}", cfg.EnvelopeHandler.Get)
			r.Post("/{id}/allocate", cfg.EnvelopeHandler.Allocate)
			r.Post("/{id}/spend", cfg.EnvelopeHandler.Spend)
			r.Post("/{id}/release-spending", cfg.EnvelopeHandler.ReleaseSpending)
			r.Delete("/{id}", cfg.EnvelopeHandler.Delete)
		})
	})

	return r
}
