package archive

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// Store is the persistence boundary of the engine. internal/store implements
// it over Postgres; tests implement it in memory. The engine reads the
// knowledge base exactly once per run and writes exactly once, at the end.
type Store interface {
	LoadKnowledgeBase(ctx context.Context, leagueID string) ([]Identity, error)
	ImportSeason(ctx context.Context, imp SeasonImport) (ImportCounts, error)
	RecordRun(ctx context.Context, rec RunRecord) error
}

// ImportCounts reports what the store actually wrote.
type ImportCounts struct {
	PeriodsUpserted   int
	RecordsInserted   int
	OrphanPeriods     int
	DraftRowsInserted int
	StandingsInserted int
}

// RunRecord is the bookkeeping row persisted for every engine run.
type RunRecord struct {
	ID           string
	LeagueID     string
	Year         int
	DryRun       bool
	Success      bool
	MessageCount int
	Summary      string
	Started      time.Time
	Finished     time.Time
}

// Engine runs one workbook import: classification, period resolution,
// unrolling, identity resolution, audit output, persistence. One synchronous
// batch per call; no state survives between runs except what the store holds.
type Engine struct {
	Teams    *TeamResolver
	Store    Store
	Logger   *slog.Logger
	LeagueID string
	AuditDir string
	DryRun   bool
}

// Run processes one workbook for one target year and returns the structured
// result. A failure that escapes per-sheet/per-period containment marks the
// run failed; rows already written for earlier periods stay committed (the
// import is idempotent per period, so re-running is the recovery path).
func (e *Engine) Run(ctx context.Context, wb workbook.Workbook, year int) *Result {
	res := &Result{RunID: uuid.NewString(), Success: true}
	started := time.Now()
	audit := &AuditWriter{Dir: e.AuditDir, Year: year}

	cls := ClassifySheets(wb.SheetNames(), year)
	e.logClassification(cls, res)

	periods := ResolvePeriods(cls, year, res)
	if len(periods) == 0 {
		res.Errorf("workbook yielded no periods for %d", year)
		res.Success = false
		e.finish(ctx, res, year, started)
		return res
	}

	kb := e.loadKnowledgeBase(ctx, res)
	if kb == nil {
		e.finish(ctx, res, year, started)
		return res
	}

	imp := SeasonImport{LeagueID: e.LeagueID, Year: year}
	for _, p := range periods {
		records := e.unrollPeriod(wb, p, p.SourceSheet == cls.DraftSheet, year, audit, res)
		resolveIdentities(records, kb, res)
		imp.Periods = append(imp.Periods, PeriodImport{Period: p, Records: records})
		res.PeriodsImported++
		res.RecordsImported += len(records)

		if err := audit.WritePeriod(p, records); err != nil {
			res.Warnf("audit file for period %d: %v", p.Number, err)
		}
		if p.SourceSheet == cls.DraftSheet {
			imp.Draft = toDraftPicks(records)
			res.DraftPicks = len(imp.Draft)
		}
	}

	if cls.StandingsSheet != "" {
		imp.Standings = e.parseStandingsSheet(wb, cls.StandingsSheet, res)
		res.StandingRows = len(imp.Standings)
	}

	if err := audit.WritePeriodDates(periods); err != nil {
		res.Warnf("period date audit file: %v", err)
	}
	if imp.Draft != nil {
		if err := audit.WriteDraft(imp.Draft); err != nil {
			res.Warnf("draft audit file: %v", err)
		}
	}
	if imp.Standings != nil {
		if err := audit.WriteStandings(imp.Standings); err != nil {
			res.Warnf("standings audit file: %v", err)
		}
	}

	if e.DryRun {
		res.Logf("dry run: store writes skipped")
	} else {
		counts, err := e.Store.ImportSeason(ctx, imp)
		if err != nil {
			res.Errorf("season import aborted: %v", err)
			res.Success = false
			e.finish(ctx, res, year, started)
			return res
		}
		res.Logf("persisted: %d periods, %d records, %d orphan periods removed, %d draft rows, %d standings rows",
			counts.PeriodsUpserted, counts.RecordsInserted, counts.OrphanPeriods,
			counts.DraftRowsInserted, counts.StandingsInserted)
	}

	e.finish(ctx, res, year, started)
	return res
}

// unrollPeriod runs the detector chain for one period sheet: grid, then
// vertical, then raw dump. Any panic while unrolling is contained to the
// period — the sheet falls back to a raw dump and the run continues.
func (e *Engine) unrollPeriod(wb workbook.Workbook, p Period, draft bool, year int, audit *AuditWriter, res *Result) (records []StatRecord) {
	rows, err := wb.Rows(p.SourceSheet)
	if err != nil {
		res.Errorf("period %d: reading sheet %q: %v", p.Number, p.SourceSheet, err)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			res.Errorf("period %d: unrolling %q failed: %v", p.Number, p.SourceSheet, r)
			e.rawDump(p.SourceSheet, rows, audit, res)
			records = nil
		}
	}()

	if layout, ok := DetectGridLayout(rows, e.Teams, draft, res); ok {
		res.Logf("period %d: sheet %q unrolled in %s mode", p.Number, p.SourceSheet, layout.Mode)
		return UnrollGrid(rows, layout, e.Teams, year, res)
	}

	if headerRow, ok := FindVerticalHeader(rows); ok {
		res.Logf("period %d: sheet %q unrolled in vertical mode (header row %d)", p.Number, p.SourceSheet, headerRow+1)
		return UnrollVertical(rows, headerRow, e.Teams, res)
	}

	res.Warnf("period %d: no layout detected for sheet %q, raw dump written", p.Number, p.SourceSheet)
	e.rawDump(p.SourceSheet, rows, audit, res)
	return nil
}

func (e *Engine) rawDump(sheet string, rows [][]workbook.Cell, audit *AuditWriter, res *Result) {
	if err := audit.WriteRawDump(sheet, rows); err != nil {
		res.Warnf("raw dump for %q: %v", sheet, err)
	}
}

func (e *Engine) parseStandingsSheet(wb workbook.Workbook, sheet string, res *Result) []StandingRow {
	rows, err := wb.Rows(sheet)
	if err != nil {
		res.Errorf("standings sheet %q: %v", sheet, err)
		return nil
	}
	standings := ParseStandings(rows, e.Teams, res)
	res.Logf("standings sheet %q yielded %d rows", sheet, len(standings))
	return standings
}

// loadKnowledgeBase takes the per-run identity snapshot. A store failure here
// is fatal (the run has done no writes yet); a dry run with no store gets an
// empty knowledge base.
func (e *Engine) loadKnowledgeBase(ctx context.Context, res *Result) *KnowledgeBase {
	if e.Store == nil {
		res.Logf("no store configured, matching against an empty knowledge base")
		return NewKnowledgeBase(nil)
	}
	identities, err := e.Store.LoadKnowledgeBase(ctx, e.LeagueID)
	if err != nil {
		res.Errorf("loading player knowledge base: %v", err)
		res.Success = false
		return nil
	}
	res.Logf("player knowledge base loaded: %d identities", len(identities))
	return NewKnowledgeBase(identities)
}

// resolveIdentities fills in resolved names and ids in place. Failed or
// ambiguous matches keep the raw name with an empty resolved identity.
func resolveIdentities(records []StatRecord, kb *KnowledgeBase, res *Result) {
	for i := range records {
		id, ok := kb.Match(records[i].RawName, records[i].Pitcher, res)
		if !ok {
			res.Unmatched++
			continue
		}
		records[i].ResolvedName = nameOf(id)
		records[i].PlayerID = id.PlayerID
		if records[i].Position == "" {
			records[i].Position = id.Position
		}
		if id.RawName != records[i].RawName {
			res.FuzzyMatches++
		}
	}
}

// toDraftPicks converts the draft sheet's unrolled records to draft results.
func toDraftPicks(records []StatRecord) []DraftPick {
	picks := make([]DraftPick, 0, len(records))
	for _, r := range records {
		picks = append(picks, DraftPick{
			TeamCode:     r.TeamCode,
			RawName:      r.RawName,
			ResolvedName: r.ResolvedName,
			Position:     r.Position,
			Price:        r.Price,
			Keeper:       r.Keeper,
		})
	}
	return picks
}

func (e *Engine) logClassification(cls Classification, res *Result) {
	if cls.DraftSheet != "" {
		res.Logf("draft sheet: %q", cls.DraftSheet)
	}
	if cls.StandingsSheet != "" {
		res.Logf("standings sheet: %q", cls.StandingsSheet)
	}
	res.Logf("period candidates: %d, ignored sheets: %d", len(cls.PeriodCandidates), len(cls.Ignored))
	for _, name := range cls.Ignored {
		res.Logf("ignored sheet %q", name)
	}
}

// finish records the run row and emits the operator log line.
func (e *Engine) finish(ctx context.Context, res *Result, year int, started time.Time) {
	rec := RunRecord{
		ID:           res.RunID,
		LeagueID:     e.LeagueID,
		Year:         year,
		DryRun:       e.DryRun,
		Success:      res.Success,
		MessageCount: len(res.Messages),
		Summary:      res.Summary(),
		Started:      started,
		Finished:     time.Now(),
	}
	if e.Store != nil {
		if err := e.Store.RecordRun(ctx, rec); err != nil {
			res.Warnf("recording import run: %v", err)
		}
	}
	if e.Logger != nil {
		e.Logger.Info("import run finished",
			"run_id", res.RunID, "year", year, "dry_run", e.DryRun,
			"duration", time.Since(started).Round(time.Millisecond),
			"summary", res.Summary())
	}
}
