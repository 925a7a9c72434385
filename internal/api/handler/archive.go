package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dugoutclub/dugout-data/internal/api/respond"
	"github.com/dugoutclub/dugout-data/internal/cache"
)

// --------------------------------------------------------------------------
// Response shapes
// --------------------------------------------------------------------------

type SeasonSummary struct {
	Year        int    `json:"year"`
	LeagueID    string `json:"league_id"`
	PeriodCount int    `json:"period_count"`
}

type PeriodInfo struct {
	Number      int    `json:"number"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	SourceSheet string `json:"source_sheet"`
}

type StatRecord struct {
	RawName      string            `json:"raw_name"`
	ResolvedName *string           `json:"resolved_name"`
	PlayerID     *string           `json:"player_id"`
	TeamCode     *string           `json:"team_code"`
	Position     *string           `json:"position"`
	Pitcher      bool              `json:"is_pitcher"`
	Keeper       bool              `json:"is_keeper"`
	Stats        map[string]string `json:"stats"`
}

type DraftPick struct {
	TeamCode     *string `json:"team_code"`
	RawName      string  `json:"raw_name"`
	ResolvedName *string `json:"resolved_name"`
	Position     *string `json:"position"`
	Price        int     `json:"price"`
	Keeper       bool    `json:"is_keeper"`
}

type StandingRow struct {
	TeamCode   string            `json:"team_code"`
	Categories map[string]string `json:"category_scores"`
	Total      *string           `json:"total"`
	Rank       int               `json:"rank"`
}

type ImportRun struct {
	ID           string    `json:"id"`
	LeagueID     string    `json:"league_id"`
	Year         int       `json:"year"`
	DryRun       bool      `json:"dry_run"`
	Success      bool      `json:"success"`
	MessageCount int       `json:"message_count"`
	Summary      string    `json:"summary"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// --------------------------------------------------------------------------
// Endpoints
// --------------------------------------------------------------------------

// GetSeasons lists all imported seasons with their period counts.
// @Summary List seasons
// @Tags archive
// @Produce json
// @Success 200 {array} handler.SeasonSummary
// @Router /api/v1/seasons [get]
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, "seasons", cache.TTLSeasons, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "seasons_list")
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		seasons := []SeasonSummary{}
		for rows.Next() {
			var s SeasonSummary
			if err := rows.Scan(&s.Year, &s.LeagueID, &s.PeriodCount); err != nil {
				return nil, err
			}
			seasons = append(seasons, s)
		}
		return seasons, rows.Err()
	})
}

// GetPeriods lists the resolved scoring periods for a season.
// @Summary List periods for a season
// @Tags archive
// @Produce json
// @Param year path int true "Season year"
// @Success 200 {array} handler.PeriodInfo
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/seasons/{year}/periods [get]
func (h *Handler) GetPeriods(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	key := fmt.Sprintf("periods:%d", year)
	h.cached(w, r, key, cache.TTLHistorical, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "periods_by_year", h.cfg.LeagueID, year)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		periods := []PeriodInfo{}
		for rows.Next() {
			var p PeriodInfo
			var start, end time.Time
			if err := rows.Scan(&p.Number, &start, &end, &p.SourceSheet); err != nil {
				return nil, err
			}
			p.StartDate = start.Format("2006-01-02")
			p.EndDate = end.Format("2006-01-02")
			periods = append(periods, p)
		}
		return periods, rows.Err()
	})
}

// GetPeriodStats returns the flat stat records for one period.
// @Summary Stat records for one period
// @Tags archive
// @Produce json
// @Param year path int true "Season year"
// @Param number path int true "Period number"
// @Success 200 {array} handler.StatRecord
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/seasons/{year}/periods/{number}/stats [get]
func (h *Handler) GetPeriodStats(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil || number < 1 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PERIOD", "Period number must be a positive integer")
		return
	}
	key := fmt.Sprintf("stats:%d:%d", year, number)
	h.cached(w, r, key, cache.TTLHistorical, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "stats_by_period", h.cfg.LeagueID, year, number)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		records := []StatRecord{}
		for rows.Next() {
			var rec StatRecord
			if err := rows.Scan(&rec.RawName, &rec.ResolvedName, &rec.PlayerID, &rec.TeamCode,
				&rec.Position, &rec.Pitcher, &rec.Keeper, &rec.Stats); err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, rows.Err()
	})
}

// GetDraft returns a season's draft results.
// @Summary Draft results for a season
// @Tags archive
// @Produce json
// @Param year path int true "Season year"
// @Success 200 {array} handler.DraftPick
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/seasons/{year}/draft [get]
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	key := fmt.Sprintf("draft:%d", year)
	h.cached(w, r, key, cache.TTLHistorical, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "draft_by_year", h.cfg.LeagueID, year)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		picks := []DraftPick{}
		for rows.Next() {
			var p DraftPick
			if err := rows.Scan(&p.TeamCode, &p.RawName, &p.ResolvedName, &p.Position,
				&p.Price, &p.Keeper); err != nil {
				return nil, err
			}
			picks = append(picks, p)
		}
		return picks, rows.Err()
	})
}

// GetStandings returns a season's final standings.
// @Summary Standings for a season
// @Tags archive
// @Produce json
// @Param year path int true "Season year"
// @Success 200 {array} handler.StandingRow
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/seasons/{year}/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	key := fmt.Sprintf("standings:%d", year)
	h.cached(w, r, key, cache.TTLHistorical, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "standings_by_year", h.cfg.LeagueID, year)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		standings := []StandingRow{}
		for rows.Next() {
			var s StandingRow
			if err := rows.Scan(&s.TeamCode, &s.Categories, &s.Total, &s.Rank); err != nil {
				return nil, err
			}
			standings = append(standings, s)
		}
		return standings, rows.Err()
	})
}

// GetImports lists recent import runs, newest first.
// @Summary Recent import runs
// @Tags archive
// @Produce json
// @Param limit query int false "Max runs to return (default 20, max 100)"
// @Success 200 {array} handler.ImportRun
// @Router /api/v1/imports [get]
func (h *Handler) GetImports(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	key := fmt.Sprintf("imports:%d", limit)
	h.cached(w, r, key, cache.TTLImports, func(ctx context.Context) (interface{}, error) {
		rows, err := h.pool.Query(ctx, "imports_recent", limit)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		runs := []ImportRun{}
		for rows.Next() {
			var run ImportRun
			if err := rows.Scan(&run.ID, &run.LeagueID, &run.Year, &run.DryRun, &run.Success,
				&run.MessageCount, &run.Summary, &run.StartedAt, &run.FinishedAt); err != nil {
				return nil, err
			}
			runs = append(runs, run)
		}
		return runs, rows.Err()
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// cached serves a response through the ETag cache: a hit answers from memory
// (or 304s on If-None-Match), a miss runs fetch and stores the result.
func (h *Handler) cached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration,
	fetch func(ctx context.Context) (interface{}, error)) {

	if data, etag, ok := h.cache.Get(key); ok {
		if r.Header.Get("If-None-Match") == etag {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := fetch(r.Context())
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to query archive")
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if r.Header.Get("If-None-Match") == etag {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2100 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_YEAR", "Year must be a four-digit integer")
		return 0, false
	}
	return year, true
}
