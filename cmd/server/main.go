package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mkarlis/posledger/internal/adapter/http"
	"github.com/mkarlis/posledger/internal/adapter/http/handler"
	"github.com/mkarlis/posledger/internal/adapter/http/middleware"
	postgresRepo "github.com/mkarlis/posledger/internal/adapter/repository/postgres"
	redisRepo "github.com/mkarlis/posledger/internal/adapter/repository/redis"
	"github.com/mkarlis/posledger/internal/infrastructure/auth"
	"github.com/mkarlis/posledger/internal/infrastructure/config"
	"github.com/mkarlis/posledger/internal/infrastructure/eventpublisher"
	"github.com/mkarlis/posledger/internal/infrastructure/logger"
	"github.com/mkarlis/posledger/internal/infrastructure/logging"
	"github.com/mkarlis/posledger/internal/infrastructure/metrics"
	"github.com/mkarlis/posledger/internal/infrastructure/postgres"
	"github.com/mkarlis/posledger/internal/infrastructure/redis"
	"github.com/mkarlis/posledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "posledger",
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	sheetRepo := postgresRepo.NewCountSheetRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	sessionRepo := postgresRepo.NewSessionRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	appMetrics := metrics.New()

	// Initialize use cases
	countingUC := usecase.NewCountingUseCase(txManager, sheetRepo, balanceRepo, ledgerRepo, auditRepo, outboxRepo, idGen, retrier, appMetrics)
	ledgerUC := usecase.NewLedgerUseCase(txManager, ledgerRepo, balanceRepo, auditRepo, outboxRepo, idGen, appMetrics)
	orderUC := usecase.NewOrderUseCase(txManager, orderRepo, sessionRepo, paymentRepo, auditRepo, outboxRepo, idGen, cfg.TaxRateBps, appMetrics)
	paymentUC := usecase.NewPaymentUseCase(txManager, orderRepo, paymentRepo, sessionRepo, auditRepo, outboxRepo, idGen, retrier, appMetrics)
	sessionUC := usecase.NewSessionUseCase(txManager, sessionRepo, auditRepo, outboxRepo, idGen, cache, appMetrics)
	reconUC := usecase.NewReconciliationUseCase(ledgerRepo, balanceRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	countingHandler := handler.NewCountingHandler(countingUC)
	orderHandler := handler.NewOrderHandler(orderUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	sessionHandler := handler.NewSessionHandler(sessionUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, reconUC)
	auditHandler := handler.NewAuditHandler(auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CountingHandler:  countingHandler,
		OrderHandler:     orderHandler,
		PaymentHandler:   paymentHandler,
		SessionHandler:   sessionHandler,
		LedgerHandler:    ledgerHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Logger:           appLogger,
	})

	// Start the outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(nil),
		Logger:     logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat),
		Metrics:    appMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("outbox publisher stopped")
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
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
