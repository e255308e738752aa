package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/budgeteer/internal/adapter/http"
	"github.com/iho/budgeteer/internal/adapter/http/handler"
	"github.com/iho/budgeteer/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/budgeteer/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/budgeteer/internal/adapter/repository/redis"
	"github.com/iho/budgeteer/internal/infrastructure/config"
	"github.com/iho/budgeteer/internal/infrastructure/eventpublisher"
	"github.com/iho/budgeteer/internal/infrastructure/logger"
	"github.com/iho/budgeteer/internal/infrastructure/metrics"
	"github.com/iho/budgeteer/internal/infrastructure/postgres"
	"github.com/iho/budgeteer/internal/infrastructure/redis"
	"github.com/iho/budgeteer/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	budgetRepo := postgresRepo.NewBudgetRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	cardRepo := postgresRepo.NewCreditCardRepository(pool)
	billRepo := postgresRepo.NewCreditCardBillRepository(pool)
	goalRepo := postgresRepo.NewGoalRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	envelopeRepo := postgresRepo.NewEnvelopeRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	budgetUC := usecase.NewBudgetUseCase(txManager, budgetRepo, outboxRepo, idGen)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, budgetRepo, outboxRepo, idGen)
	categoryUC := usecase.NewCategoryUseCase(txManager, categoryRepo, transactionRepo, outboxRepo, idGen)
	cardUC := usecase.NewCreditCardUseCase(txManager, cardRepo, billRepo, outboxRepo, idGen)
	transactionUC := usecase.NewTransactionUseCase(txManager, transactionRepo, categoryRepo, outboxRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, categoryRepo, outboxRepo, idGen)
	billPaymentUC := usecase.NewBillPaymentUseCase(txManager, billRepo, accountRepo, transactionRepo, outboxRepo, idGen)
	goalUC := usecase.NewGoalUseCase(txManager, goalRepo, accountRepo, outboxRepo, idGen)
	envelopeUC := usecase.NewEnvelopeUseCase(txManager, envelopeRepo, outboxRepo, idGen)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BudgetHandler:      handler.NewBudgetHandler(budgetUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		CreditCardHandler:  handler.NewCreditCardHandler(cardUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		TransferHandler:    handler.NewTransferHandler(transferUC, retrier),
		BillPaymentHandler: handler.NewBillPaymentHandler(billPaymentUC, retrier),
		GoalHandler:        handler.NewGoalHandler(goalUC, retrier),
		EnvelopeHandler:    handler.NewEnvelopeHandler(envelopeUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		RateLimiter:        rateLimiter,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		Cache:              cache,
		CacheTTL:           cfg.CacheTTL,
		Logger:             log,
	})

	// Background workers stop when this context is cancelled
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// Start event publisher
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
	})
	go publisher.Start(workerCtx)

	// Sweep published outbox rows past the retention window
	go runOutboxRetention(workerCtx, outboxRepo, cfg.OutboxRetention, log)

	// Flag overdue bills and scheduled transactions
	go runOverdueSweeper(workerCtx, cardUC, transactionUC, cfg.OverdueInterval, cfg.OverdueBatchSize, log)

	// Drop idle per-IP limiters so the map does not grow unbounded
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.Reset()
			}
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// runOutboxRetention periodically deletes outbox rows published longer
// than the retention window ago.
func runOutboxRetention(ctx context.Context, outboxRepo usecase.OutboxRepository, retention time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := outboxRepo.DeletePublished(ctx, time.Now().Add(-retention)); err != nil {
				log.Error().Err(err).Msg("failed to delete published outbox events")
			}
		}
	}
}

// runOverdueSweeper periodically flags past-due bills and scheduled
// transactions whose date has passed.
func runOverdueSweeper(
	ctx context.Context,
	cardUC *usecase.CreditCardUseCase,
	transactionUC *usecase.TransactionUseCase,
	interval time.Duration,
	batchSize int,
	log zerolog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bills, err := cardUC.MarkOverdueBills(ctx, batchSize)
			if err != nil {
				log.Error().Err(err).Msg("failed to mark overdue bills")
			} else if bills > 0 {
				metrics.OverdueFlagged.WithLabelValues("bill").Add(float64(bills))
				log.Info().Int("count", bills).Msg("marked overdue bills")
			}

			transactions, err := transactionUC.MarkOverdueTransactions(ctx, batchSize)
			if err != nil {
				log.Error().Err(err).Msg("failed to mark overdue transactions")
			} else if transactions > 0 {
				metrics.OverdueFlagged.WithLabelValues("transaction").Add(float64(transactions))
				log.Info().Int("count", transactions).Msg("marked overdue transactions")
			}
		}
	}
}
