// Package main provides the entry point for the dashboard server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/data-ashita/monitor-dash/internal/api"
	pgstore "github.com/data-ashita/monitor-dash/internal/store/postgres"
	"github.com/data-ashita/monitor-dash/pkg/config"
	"github.com/data-ashita/monitor-dash/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New(slog.LevelInfo, true)

	// Load configuration. Missing connection credentials are a fatal startup
	// condition surfaced as a clear message, not a crash.
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("configuration error")
		os.Exit(1)
	}

	// Initialize database store
	storeCfg := pgstore.DefaultConfig(cfg.DSN())
	store, err := pgstore.NewPostgresStore(storeCfg, log.WithComponent("store").Logger)
	if err != nil {
		log.WithError(err).Error("failed to connect to log database")
		os.Exit(1)
	}
	defer store.Close()

	// Create the dashboard server
	server, err := api.NewServer(cfg, store, log)
	if err != nil {
		log.WithError(err).Error("failed to create server")
		os.Exit(1)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	log.Info("starting dashboard server",
		"host", cfg.HTTPHost,
		"port", cfg.HTTPPort,
	)

	if err := server.Start(ctx); err != nil {
		log.WithError(err).Error("server error")
		os.Exit(1)
	}

	// Give time for graceful shutdown
	time.Sleep(100 * time.Millisecond)
	log.Info("server stopped")
}
