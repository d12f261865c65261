package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"custodial-wallet/config"
	kafkaEvents "custodial-wallet/internal/adapter/events/kafka"
	httpHandler "custodial-wallet/internal/adapter/http/handler"
	pgStorage "custodial-wallet/internal/adapter/storage/postgres"
	redisStorage "custodial-wallet/internal/adapter/storage/redis"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/internal/service"
	"custodial-wallet/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Custodial Wallet Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize event publisher (Kafka, or a no-op when unconfigured)
	var publisher ports.EventPublisher
	if cfg.Kafka.Enabled() {
		publisher, err = kafkaEvents.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.TransactionTopic, cfg.Kafka.WalletTopic, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Kafka")
		}
	} else {
		log.Warn().Msg("Kafka brokers not configured, events disabled")
		publisher = kafkaEvents.NewNopPublisher()
	}
	defer publisher.Close()

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	lowBalance, err := decimal.NewFromString(cfg.Wallet.LowBalanceThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid low balance threshold")
	}

	// Initialize business services
	ledgerSvc := service.NewLedgerService(ledgerRepo, log)
	walletSvc := service.NewWalletService(walletRepo, txRepo, accountRepo, hashSvc, publisher, lowBalance, log)
	txSvc := service.NewTransactionService(txRepo, walletRepo, accountRepo, ledgerSvc, walletSvc, transactor, publisher, log)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		LedgerSvc:      ledgerSvc,
		TransactionSvc: txSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
