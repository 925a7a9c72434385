// Command dugout-api serves the reconciled league archive over HTTP.
//
// Usage:
//
//	dugout-api
//	API_PORT=8080 dugout-api

// @title Dugout Archive API
// @version 1.0.0
// @description Read-only API over the reconciled fantasy league archive: seasons, scoring periods, player stat records, draft results, and standings.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/dugoutclub/dugout-data/internal/api"
	"github.com/dugoutclub/dugout-data/internal/cache"
	"github.com/dugoutclub/dugout-data/internal/config"
	"github.com/dugoutclub/dugout-data/internal/db"
	"github.com/dugoutclub/dugout-data/internal/maintenance"

	_ "github.com/dugoutclub/dugout-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Import-run retention ticker
	go maintenance.Start(ctx, pool.Pool, maintenance.DefaultConfig(cfg.RunRetention), logger)

	srv := api.NewServer(cfg, pool.Pool, appCache)

	// Start server in background
	go func() {
		logger.Info("Starting Dugout Archive API",
			"addr", srv.Addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
