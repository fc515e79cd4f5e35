package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pfm/internal/config"
	"pfm/internal/ledger"
	"pfm/internal/log"
	"pfm/internal/services"
	"pfm/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting alert-worker", "interval", cfg.AlertCheckInterval.String())

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

	budgets := services.NewBudgetService(store)
	alertWorker := worker.NewAlertWorker(store, budgets)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := alertWorker.Run(ctx, cfg.AlertCheckInterval); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Alert loop failed", log.FieldError, err)
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

	logger.Info("alert-worker stopped")
}
