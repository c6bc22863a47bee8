package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "corebank/internal/adapter/http"
	"corebank/internal/adapter/http/handler"
	postgresRepo "corebank/internal/adapter/repository/postgres"
	redisRepo "corebank/internal/adapter/repository/redis"
	"corebank/internal/infrastructure/auth"
	"corebank/internal/infrastructure/config"
	"corebank/internal/infrastructure/logging"
	"corebank/internal/infrastructure/metrics"
	"corebank/internal/infrastructure/postgres"
	"corebank/internal/infrastructure/redis"
	"corebank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	logger.Info().Msg("connected to postgres")

	// Redis is an optional read cache. Without it every account read goes
	// to postgres, which is correct, just slower.
	var cache usecase.Cache
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		cache = redisRepo.NewCache(redisClient)
		logger.Info().Msg("connected to redis")
	}

	m := metrics.New()

	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	registry := postgresRepo.NewIdempotencyRegistry(pool)
	idGen := postgresRepo.NewULIDGenerator()
	numGen := postgresRepo.NewAccountNumberGenerator()
	retrier := postgresRepo.NewRetrier()

	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, numGen, cache, cfg.AccountCacheTTL, m)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transferRepo, entryRepo, registry, idGen, retrier, cache, m)
	entryUC := usecase.NewEntryUseCase(accountRepo, entryRepo)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransferHandler:    handler.NewTransferHandler(transferUC),
		TransactionHandler: handler.NewTransactionHandler(entryUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		Metrics:            m,
		Logger:             logger,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
