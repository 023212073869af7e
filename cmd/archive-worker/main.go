package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finanzas/internal/amqp"
	"finanzas/internal/config"
	"finanzas/internal/storage"
	"finanzas/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting archive-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the archive worker")
		os.Exit(1)
	}

	ledgers, err := storage.NewCSVStore(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, "dir", cfg.DataDir)
		os.Exit(1)
	}

	archive, err := storage.NewArchiveRepository(cfg.ArchiveDBPath)
	if err != nil {
		logger.Error("Failed to initialize archive repository", "error", err, "path", cfg.ArchiveDBPath)
		os.Exit(1)
	}
	defer archive.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	archiveWorker := worker.NewArchiveWorker(ledgers, ledgers, archive)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// On startup, mirror everything once to recover from downtime.
	logger.Info("Performing startup archive sweep...")
	if err := archiveWorker.SweepAll(ctx); err != nil {
		logger.Error("Startup sweep finished with errors", "error", err)
		// Don't exit - continue with normal operation
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := amqpClient.ConsumeLedgerSaved(ctx, archiveWorker.HandleLedgerSaved); err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				logger.Info("Performing periodic archive sweep")
				if err := archiveWorker.SweepAll(ctx); err != nil {
					logger.Error("Periodic sweep finished with errors", "error", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	})

	logger.Info("Archive worker started",
		"queue", cfg.AMQPQueue,
		"sweep_interval", cfg.SweepInterval.String())

	if err := g.Wait(); err != nil {
		logger.Error("Archive worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Archive worker stopped gracefully")
}
