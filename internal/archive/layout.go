package archive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// LayoutMode is how a sheet arranges its records.
type LayoutMode int

const (
	// LayoutGrid is the team-columns roster grid: one column per team,
	// rosters read top to bottom.
	LayoutGrid LayoutMode = iota
	// LayoutVertical is the record table: one row per player, named columns,
	// possibly several side-by-side copies.
	LayoutVertical
)

func (m LayoutMode) String() string {
	if m == LayoutGrid {
		return "grid"
	}
	return "vertical"
}

// Layout is the detected structure of one sheet.
type Layout struct {
	Mode        LayoutMode
	HeaderRow   int
	TeamColumns map[int]string // grid: column index -> team code
	PositionCol int            // grid: -1 when no position column found
}

// positionTokens is the full roster-slot vocabulary seen across 18 years of
// workbooks, including bench/IL slots.
var positionTokens = map[string]bool{
	"C": true, "1B": true, "2B": true, "3B": true, "SS": true,
	"OF": true, "LF": true, "CF": true, "RF": true,
	"SP": true, "RP": true, "P": true, "DH": true,
	"CM": true, "MI": true, "UT": true, "CI": true,
	"IL1": true, "IL2": true, "DL": true, "R": true,
	"STAFF": true, "PITCHER": true, "CO": true,
}

// pitcherTokens flip the section state machine to the pitcher section;
// hitterTokens flip it back. Bench/IL tokens are neutral.
var pitcherTokens = map[string]bool{
	"SP": true, "RP": true, "P": true, "STAFF": true, "PITCHER": true,
}

var hitterTokens = map[string]bool{
	"C": true, "1B": true, "2B": true, "3B": true, "SS": true,
	"OF": true, "LF": true, "CF": true, "RF": true, "DH": true,
	"CM": true, "MI": true, "UT": true, "CI": true, "CO": true,
}

// IsPositionToken reports whether a trimmed cell value is a roster-slot token.
func IsPositionToken(s string) bool {
	return positionTokens[strings.ToUpper(strings.TrimSpace(s))]
}

// standardizedHeaderTokens mark sheets that were already exported as flat
// tables by an earlier tool; those always go to the vertical unroller.
var standardizedHeaderTokens = []string{"player_name", "team_code"}

const (
	layoutScanRows      = 15
	positionScanRows    = 30
	gridHeaderMinDraft  = 3 // draft rosters can be short
	gridHeaderMinPeriod = 4
)

// DetectGridLayout scans the first rows of a sheet for a team header row: a
// row with enough cells that resolve to teams (or at least look like team
// names). Returns ok=false when the sheet is not a grid — including when a
// standardized flat-table header is found first — in which case the caller
// falls through to the vertical detector.
func DetectGridLayout(rows [][]workbook.Cell, teams *TeamResolver, draft bool, res *Result) (Layout, bool) {
	minTeams := gridHeaderMinPeriod
	if draft {
		minTeams = gridHeaderMinDraft
	}

	limit := len(rows)
	if limit > layoutScanRows {
		limit = layoutScanRows
	}

	for r := 0; r < limit; r++ {
		if isStandardizedHeader(rows[r]) {
			res.Logf("row %d carries a standardized header, routing to vertical mode", r+1)
			return Layout{}, false
		}

		cols := teamHeaderColumns(rows[r], teams)
		if len(cols) < minTeams {
			continue
		}

		res.Logf("grid header found at row %d with %d team columns", r+1, len(cols))
		return Layout{
			Mode:        LayoutGrid,
			HeaderRow:   r,
			TeamColumns: cols,
			PositionCol: findPositionColumn(rows, r+1),
		}, true
	}
	return Layout{}, false
}

// teamHeaderColumns maps column index to team code for every cell in the row
// that is plausibly a team header. Cells that look like a team but don't
// resolve get a placeholder code so column positions survive for debugging.
func teamHeaderColumns(row []workbook.Cell, teams *TeamResolver) map[int]string {
	cols := make(map[int]string)
	for i, cell := range row {
		v := strings.TrimSpace(cell.Value)
		if v == "" {
			continue
		}
		if code := teams.Resolve(v); code != "" {
			cols[i] = code
			continue
		}
		if plausibleTeamCell(v) {
			cols[i] = fmt.Sprintf("UNK-%d", i)
		}
	}
	return cols
}

// plausibleTeamCell: a non-numeric string of 3+ characters that isn't a
// roster-slot token.
func plausibleTeamCell(v string) bool {
	if len(v) < 3 || IsPositionToken(v) {
		return false
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return false
	}
	return true
}

// findPositionColumn locates the first column whose cells just below the
// header carry recognizable roster-slot tokens. Returns -1 when none does.
func findPositionColumn(rows [][]workbook.Cell, fromRow int) int {
	limit := len(rows)
	if limit > positionScanRows {
		limit = positionScanRows
	}

	maxCols := 0
	for r := fromRow; r < limit; r++ {
		if len(rows[r]) > maxCols {
			maxCols = len(rows[r])
		}
	}

	for c := 0; c < maxCols; c++ {
		hits := 0
		for r := fromRow; r < limit && hits < 3; r++ {
			if c < len(rows[r]) && IsPositionToken(rows[r][c].Value) {
				hits++
			}
		}
		if hits >= 2 {
			return c
		}
	}
	return -1
}

func isStandardizedHeader(row []workbook.Cell) bool {
	for _, cell := range row {
		v := strings.ToLower(strings.TrimSpace(cell.Value))
		for _, tok := range standardizedHeaderTokens {
			if v == tok {
				return true
			}
		}
	}
	return false
}
