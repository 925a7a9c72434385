// Package store persists reconciled seasons to Postgres and implements the
// archive engine's Store boundary.
//
// Import semantics: seasons and periods are upserted; each period's stat
// rows are deleted and re-inserted wholesale; periods that existed before
// but have no sheet in the current workbook are removed with their rows
// (orphan cleanup). Draft results and standings are replaced per season only
// when their source sheet was present. Each period runs in its own
// transaction, so a period is never half-written — but there is deliberately
// no transaction across the whole run: a mid-run failure leaves earlier
// periods committed, and recovery is re-running the (idempotent) import.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dugoutclub/dugout-data/internal/archive"
	"github.com/dugoutclub/dugout-data/internal/db"
)

// Store wraps the shared pool with archive persistence.
type Store struct {
	pool *db.Pool
}

// New creates a Store over the shared pool.
func New(pool *db.Pool) *Store {
	return &Store{pool: pool}
}

// LoadKnowledgeBase reads the distinct previously-imported player identities
// for a league. Called once at the start of each run.
func (s *Store) LoadKnowledgeBase(ctx context.Context, leagueID string) ([]archive.Identity, error) {
	rows, err := s.pool.Query(ctx, "kb_identities", leagueID)
	if err != nil {
		return nil, fmt.Errorf("query knowledge base: %w", err)
	}
	defer rows.Close()

	var identities []archive.Identity
	for rows.Next() {
		var id archive.Identity
		if err := rows.Scan(&id.RawName, &id.FullName, &id.PlayerID, &id.Position, &id.Pitcher, &id.TeamCode); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		identities = append(identities, id)
	}
	return identities, rows.Err()
}

// ImportSeason writes one reconciled season. See the package comment for the
// replacement and orphan-cleanup semantics.
func (s *Store) ImportSeason(ctx context.Context, imp archive.SeasonImport) (archive.ImportCounts, error) {
	var counts archive.ImportCounts

	seasonID, err := s.upsertSeason(ctx, imp.LeagueID, imp.Year)
	if err != nil {
		return counts, err
	}

	kept := make([]int, 0, len(imp.Periods))
	for _, pi := range imp.Periods {
		n, err := s.importPeriod(ctx, seasonID, pi)
		if err != nil {
			return counts, fmt.Errorf("period %d: %w", pi.Period.Number, err)
		}
		counts.PeriodsUpserted++
		counts.RecordsInserted += n
		kept = append(kept, pi.Period.Number)
	}

	orphans, err := s.deleteOrphanPeriods(ctx, seasonID, kept)
	if err != nil {
		return counts, fmt.Errorf("orphan cleanup: %w", err)
	}
	counts.OrphanPeriods = orphans

	if imp.Draft != nil {
		n, err := s.replaceDraft(ctx, seasonID, imp.Draft)
		if err != nil {
			return counts, fmt.Errorf("draft: %w", err)
		}
		counts.DraftRowsInserted = n
	}
	if imp.Standings != nil {
		n, err := s.replaceStandings(ctx, seasonID, imp.Standings)
		if err != nil {
			return counts, fmt.Errorf("standings: %w", err)
		}
		counts.StandingsInserted = n
	}

	return counts, nil
}

// RecordRun persists the bookkeeping row for one engine run.
func (s *Store) RecordRun(ctx context.Context, rec archive.RunRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO import_runs (
			id, league_id, year, dry_run, success, message_count,
			summary, started_at, finished_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.LeagueID, rec.Year, rec.DryRun, rec.Success,
		rec.MessageCount, rec.Summary, rec.Started, rec.Finished,
	)
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Internals
// --------------------------------------------------------------------------

func (s *Store) upsertSeason(ctx context.Context, leagueID string, year int) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO seasons (league_id, year)
		VALUES ($1, $2)
		ON CONFLICT (league_id, year) DO UPDATE SET year = EXCLUDED.year
		RETURNING id`,
		leagueID, year,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert season %d: %w", year, err)
	}
	return id, nil
}

// importPeriod upserts the period row, then replaces its stat rows inside
// one transaction.
func (s *Store) importPeriod(ctx context.Context, seasonID int64, pi archive.PeriodImport) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var periodID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO periods (season_id, period_number, start_date, end_date, source_sheet)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (season_id, period_number) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			source_sheet = EXCLUDED.source_sheet
		RETURNING id`,
		seasonID, pi.Period.Number, pi.Period.Start, pi.Period.End, pi.Period.SourceSheet,
	).Scan(&periodID)
	if err != nil {
		return 0, fmt.Errorf("upsert period: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM player_stat_records WHERE period_id = $1`, periodID); err != nil {
		return 0, fmt.Errorf("clear stat rows: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range pi.Records {
		stats, _ := json.Marshal(nonNilStats(r.Stats))
		batch.Queue(`
			INSERT INTO player_stat_records (
				period_id, raw_name, resolved_name, kb_player_id, team_code,
				position, is_pitcher, is_keeper, stats
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			periodID, r.RawName, nilEmpty(r.ResolvedName), nilEmpty(r.PlayerID),
			nilEmpty(r.TeamCode), nilEmpty(r.Position), r.Pitcher, r.Keeper, stats,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert stat rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(pi.Records), nil
}

// deleteOrphanPeriods removes this season's periods whose numbers are not in
// the current workbook, along with their stat rows.
func (s *Store) deleteOrphanPeriods(ctx context.Context, seasonID int64, kept []int) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM player_stat_records
		WHERE period_id IN (
			SELECT id FROM periods
			WHERE season_id = $1 AND period_number != ALL($2)
		)`,
		seasonID, kept,
	); err != nil {
		return 0, fmt.Errorf("delete orphan stat rows: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM periods
		WHERE season_id = $1 AND period_number != ALL($2)`,
		seasonID, kept,
	)
	if err != nil {
		return 0, fmt.Errorf("delete orphan periods: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// replaceDraft swaps the season's draft results wholesale.
func (s *Store) replaceDraft(ctx context.Context, seasonID int64, picks []archive.DraftPick) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM draft_results WHERE season_id = $1`, seasonID); err != nil {
		return 0, fmt.Errorf("clear draft: %w", err)
	}

	batch := &pgx.Batch{}
	for _, p := range picks {
		batch.Queue(`
			INSERT INTO draft_results (
				season_id, team_code, raw_name, resolved_name, position, price, is_keeper
			) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			seasonID, nilEmpty(p.TeamCode), p.RawName, nilEmpty(p.ResolvedName),
			nilEmpty(p.Position), p.Price, p.Keeper,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert draft: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(picks), nil
}

// replaceStandings swaps the season's standings wholesale.
func (s *Store) replaceStandings(ctx context.Context, seasonID int64, standings []archive.StandingRow) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM standings WHERE season_id = $1`, seasonID); err != nil {
		return 0, fmt.Errorf("clear standings: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range standings {
		cats, _ := json.Marshal(nonNilStats(row.Categories))
		batch.Queue(`
			INSERT INTO standings (season_id, team_code, category_scores, total, rank)
			VALUES ($1,$2,$3,$4,$5)`,
			seasonID, row.TeamCode, cats, nilEmpty(row.Total), row.Rank,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert standings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(standings), nil
}

// nilEmpty returns nil for empty strings (maps to SQL NULL).
func nilEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// nonNilStats ensures a nil map marshals as {} rather than null.
func nonNilStats(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
