package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pfm/internal/amqp"
	"pfm/internal/cache"
	"pfm/internal/config"
	"pfm/internal/core"
	"pfm/internal/ledger"
	"pfm/internal/log"
	"pfm/internal/provider"
	"pfm/internal/services"
	"pfm/internal/worker"
)

func main() {
	// .env is for local development; missing in containers and that's fine.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting sync-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	store, err := ledger.Open(ledger.Backend(cfg.Backend), cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open ledger", log.FieldError, err, "backend", cfg.Backend)
		os.Exit(1)
	}
	defer store.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	source := provider.NewFileSource(cfg.ProviderFixturePath)

	summaryCache := cache.NewLRU[core.DashboardSummary](cfg.SummaryCacheSize, cfg.SummaryCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(summaryCache)
	cacheManager.StartCleanup(cfg.SummaryCacheTTL)
	defer cacheManager.Stop()

	dashboards := services.NewDashboardService(store, summaryCache)
	syncWorker := worker.NewSyncWorker(store, source, services.NewReconciler(store), dashboards)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := amqpClient.ConsumeAccountSync(ctx, syncWorker.HandleSyncMessage); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("sync-worker stopped")
}
