// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — the API process is already long-running, so scheduled
// work is driven from Go.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RetentionInterval time.Duration // How often to prune old import runs
	RunRetention      time.Duration // How long import_runs rows are kept
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig(runRetention time.Duration) Config {
	return Config{
		RetentionInterval: 6 * time.Hour,
		RunRetention:      runRetention,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"retention_interval", cfg.RetentionInterval,
		"run_retention", cfg.RunRetention)

	if cfg.RetentionInterval > 0 {
		t := time.NewTicker(cfg.RetentionInterval)
		defer t.Stop()
		go runLoop(ctx, t.C, func() { pruneImportRuns(ctx, pool, cfg.RunRetention, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// pruneImportRuns purges import_runs rows older than the retention window.
// The runs table is pure bookkeeping — pruning it never touches archive data.
func pruneImportRuns(ctx context.Context, pool *pgxpool.Pool, retention time.Duration, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM import_runs
		WHERE finished_at < NOW() - $1::interval`,
		retention.String())
	if err != nil {
		logger.Warn("Retention: failed to prune import runs", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Retention: pruned old import runs", "count", tag.RowsAffected())
	}
}
