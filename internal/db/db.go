// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dugoutclub/dugout-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all read statements the API and the
// importer use. Writes stay inline in internal/store since they run once per
// import, not per request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// API: seasons overview
		"seasons_list": `
			SELECT s.year, s.league_id, COUNT(p.id) AS period_count
			FROM seasons s
			LEFT JOIN periods p ON p.season_id = s.id
			GROUP BY s.year, s.league_id
			ORDER BY s.year`,

		// API: period table for a season
		"periods_by_year": `
			SELECT p.period_number, p.start_date, p.end_date, p.source_sheet
			FROM periods p
			JOIN seasons s ON s.id = p.season_id
			WHERE s.league_id = $1 AND s.year = $2
			ORDER BY p.period_number`,

		// API: flat stat records for one period
		"stats_by_period": `
			SELECT r.raw_name, r.resolved_name, r.kb_player_id, r.team_code,
			       r.position, r.is_pitcher, r.is_keeper, r.stats
			FROM player_stat_records r
			JOIN periods p ON p.id = r.period_id
			JOIN seasons s ON s.id = p.season_id
			WHERE s.league_id = $1 AND s.year = $2 AND p.period_number = $3
			ORDER BY r.team_code, r.raw_name`,

		// API: per-season draft and standings
		"draft_by_year": `
			SELECT d.team_code, d.raw_name, d.resolved_name, d.position,
			       d.price, d.is_keeper
			FROM draft_results d
			JOIN seasons s ON s.id = d.season_id
			WHERE s.league_id = $1 AND s.year = $2
			ORDER BY d.team_code, d.price DESC`,
		"standings_by_year": `
			SELECT t.team_code, t.category_scores, t.total, t.rank
			FROM standings t
			JOIN seasons s ON s.id = t.season_id
			WHERE s.league_id = $1 AND s.year = $2
			ORDER BY t.rank`,

		// API: recent import runs
		"imports_recent": `
			SELECT id, league_id, year, dry_run, success, message_count,
			       summary, started_at, finished_at
			FROM import_runs
			ORDER BY started_at DESC
			LIMIT $1`,

		// Importer: player knowledge base snapshot
		"kb_identities": `
			SELECT DISTINCT ON (r.raw_name)
			       r.raw_name, COALESCE(r.resolved_name, ''),
			       COALESCE(r.kb_player_id, ''), COALESCE(r.position, ''),
			       r.is_pitcher, COALESCE(r.team_code, '')
			FROM player_stat_records r
			JOIN periods p ON p.id = r.period_id
			JOIN seasons s ON s.id = p.season_id
			WHERE s.league_id = $1
			ORDER BY r.raw_name, r.id DESC`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
