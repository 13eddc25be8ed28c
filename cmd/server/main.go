package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/yamori/ammoledger/internal/adapter/http"
	"github.com/yamori/ammoledger/internal/adapter/http/handler"
	"github.com/yamori/ammoledger/internal/adapter/http/middleware"
	postgresRepo "github.com/yamori/ammoledger/internal/adapter/repository/postgres"
	redisRepo "github.com/yamori/ammoledger/internal/adapter/repository/redis"
	"github.com/yamori/ammoledger/internal/infrastructure/config"
	"github.com/yamori/ammoledger/internal/infrastructure/logger"
	"github.com/yamori/ammoledger/internal/infrastructure/metrics"
	"github.com/yamori/ammoledger/internal/infrastructure/postgres"
	"github.com/yamori/ammoledger/internal/infrastructure/redis"
	"github.com/yamori/ammoledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	eventRepo := postgresRepo.NewEventRepository(pool, cfg.AppendLockTimeout)
	typeRepo := postgresRepo.NewTypeRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, eventRepo, typeRepo, auditRepo, cache, retrier)
	correctionUC := usecase.NewCorrectionUseCase(ledgerUC, eventRepo)
	balanceUC := usecase.NewBalanceUseCase(eventRepo, typeRepo, cache)
	integrityUC := usecase.NewIntegrityUseCase(eventRepo)
	typeUC := usecase.NewTypeUseCase(typeRepo, idGen)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EventHandler:     handler.NewEventHandler(ledgerUC, correctionUC),
		TypeHandler:      handler.NewTypeHandler(typeUC),
		BalanceHandler:   handler.NewBalanceHandler(balanceUC),
		IntegrityHandler: handler.NewIntegrityHandler(integrityUC),
		AuditHandler:     handler.NewAuditHandler(auditUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		Logger:           appLogger,
		Metrics:          appMetrics,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(50, 100),
	})

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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
