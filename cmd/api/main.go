package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagfx-engine/config"
	"pagfx-engine/internal/adapter/acquirer"
	httpHandler "pagfx-engine/internal/adapter/http/handler"
	memStorage "pagfx-engine/internal/adapter/storage/memory"
	pgStorage "pagfx-engine/internal/adapter/storage/postgres"
	redisStorage "pagfx-engine/internal/adapter/storage/redis"
	"pagfx-engine/internal/core/ports"
	"pagfx-engine/internal/service"
	"pagfx-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("storage", cfg.Storage.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting pagfx engine")

	ctx := context.Background()

	// Transaction store: in-memory by default, PostgreSQL in production.
	var (
		txRepo         ports.TransactionRepository
		eventRepo      ports.WebhookEventRepository
		healthCheckers []ports.HealthChecker
	)
	switch cfg.Storage.Backend {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		txRepo = pgStorage.NewTransactionRepo(pool)
		eventRepo = pgStorage.NewWebhookEventRepo(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	default:
		txRepo = memStorage.NewTransactionStore()
		eventRepo = memStorage.NewWebhookEventStore()
	}

	// Webhook dedup fast path rides on Redis when enabled; the store's
	// idempotent transitions keep things correct without it.
	var dedup ports.EventDedupStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		dedup = redisStorage.NewEventDedupStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	gateway := acquirer.NewSimulatedGateway(log)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	txSvc := service.NewTransactionService(txRepo, gateway, log)
	webhookSvc := service.NewWebhookService(txRepo, eventRepo, dedup, log)
	feeSvc := service.NewFeeService(log)
	credSvc := service.NewCredentialService(cfg.Credentials)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		TransactionSvc: txSvc,
		WebhookSvc:     webhookSvc,
		FeeSvc:         feeSvc,
		CredentialSvc:  credSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

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
