// Package archive implements the historical workbook reconciliation engine:
// it classifies the sheets of a league-season workbook, infers scoring-period
// boundaries from tab names, unrolls roster grids and record tables into flat
// player-stat records, resolves team and player identities against the alias
// dictionary and the knowledge base, and hands the normalized season to the
// store for an idempotent, period-scoped import.
//
// Everything in this package is a pure in-memory transform; the only I/O is
// the audit-file output and whatever the injected Store does.
package archive

import "time"

// Period is one contiguous date range of a season: the draft, or a scoring
// window. Numbers are 1-based and contiguous; at most MaxPeriods per season.
type Period struct {
	Number      int
	Start       time.Time
	End         time.Time
	SourceSheet string
}

// MaxPeriods is the hard cap on periods per season. The league's real
// schedule has never exceeded seven snapshots in 18 years.
const MaxPeriods = 7

// StatRecord is one player observed in one period's sheet. RawName is always
// the cell text as read; ResolvedName/PlayerID are empty when identity
// matching failed (ambiguity is preserved, not guessed away).
type StatRecord struct {
	RawName      string
	ResolvedName string
	PlayerID     string
	TeamCode     string
	Position     string
	Pitcher      bool
	Keeper       bool
	Price        int // auction price when present (draft/grid sheets), else 0
	Stats        map[string]string
}

// DraftPick is one auction-draft selection.
type DraftPick struct {
	TeamCode     string
	RawName      string
	ResolvedName string
	Position     string
	Price        int
	Keeper       bool
}

// StandingRow is one team's final line in the season standings sheet.
type StandingRow struct {
	TeamCode   string
	Categories map[string]string
	Total      string
	Rank       int
}

// PeriodImport couples a resolved period with its fully unrolled records.
type PeriodImport struct {
	Period  Period
	Records []StatRecord
}

// SeasonImport is the complete normalized output of one engine run, as handed
// to the store. Draft and Standings are nil when their source sheet was
// absent from the workbook; the store must then leave existing rows alone.
type SeasonImport struct {
	LeagueID  string
	Year      int
	Periods   []PeriodImport
	Draft     []DraftPick
	Standings []StandingRow
}

// Identity is one previously-imported player identity, the unit of the
// knowledge base.
type Identity struct {
	RawName  string
	FullName string
	PlayerID string
	Position string
	Pitcher  bool
	TeamCode string
}

// RosterCap returns the per-team roster cap for a season. The league expanded
// rosters from 23 to 30 starting with the 2023 season.
func RosterCap(year int) int {
	if year <= 2022 {
		return 23
	}
	return 30
}
