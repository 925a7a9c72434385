package archive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// Roster-grid unrolling: each team's roster occupies its own column, read top
// to bottom, with hitter and pitcher blocks separated by section headers or
// by the roster-slot column flipping to pitcher tokens.

var gridTerminatorKeywords = []string{"total", "salary cap", "standings"}

const (
	adjacentScanWidth = 5
	minAuctionPrice   = 1
	maxAuctionPrice   = 500
)

// UnrollGrid walks a grid sheet below its detected header row and emits one
// StatRecord per non-noise name cell. Each team stops at the era's roster cap
// so a misdetected header can't cascade into garbage rows.
func UnrollGrid(rows [][]workbook.Cell, layout Layout, teams *TeamResolver, year int, res *Result) []StatRecord {
	var records []StatRecord
	perTeam := make(map[string]int)
	rosterCap := RosterCap(year)
	section := rosterSection{}

	// Columns in left-to-right order so the output is stable run to run.
	cols := make([]int, 0, len(layout.TeamColumns))
	for col := range layout.TeamColumns {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	for r := layout.HeaderRow + 1; r < len(rows); r++ {
		row := rows[r]
		if isTerminatorRow(row) {
			res.Logf("grid scan stopped at terminator row %d", r+1)
			break
		}

		if next, ok := sectionHeaderRow(row, section); ok {
			section = next
			continue
		}

		rowPos := ""
		if layout.PositionCol >= 0 && layout.PositionCol < len(row) {
			if v := strings.TrimSpace(row[layout.PositionCol].Value); IsPositionToken(v) {
				rowPos = strings.ToUpper(v)
				section = section.applyPosition(rowPos)
			}
		}

		for _, col := range cols {
			team := layout.TeamColumns[col]
			if col >= len(row) {
				continue
			}
			cell := row[col]
			name := strings.TrimSpace(cell.Value)
			if isGridNoise(name, teams) {
				continue
			}

			if perTeam[team] >= rosterCap {
				if perTeam[team] == rosterCap {
					res.Warnf("team %s exceeds the %d-player roster cap, extra rows ignored", team, rosterCap)
					perTeam[team]++ // warn once
				}
				continue
			}

			rec := StatRecord{
				RawName:  name,
				TeamCode: team,
				Position: rowPos,
				Keeper:   cell.Bold,
				Stats:    map[string]string{},
			}
			scanAdjacent(row, col, &rec)
			if rec.Position != "" {
				section = section.applyPosition(rec.Position)
			}
			rec.Pitcher = section.pitcher

			records = append(records, rec)
			perTeam[team]++
		}
	}

	validateRosterSizes(perTeam, rosterCap, res)
	return records
}

// isGridNoise: the name slot is empty, a roster-slot or section token, a
// resolvable team name, a single character, or purely numeric.
func isGridNoise(v string, teams *TeamResolver) bool {
	if len(v) <= 1 || IsPositionToken(v) {
		return true
	}
	if _, isSection := (rosterSection{}).applyKeyword(v); isSection {
		return true
	}
	if teams.Resolve(v) != "" {
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	return false
}

// scanAdjacent reads up to five cells right of the name slot for a position
// token (when the roster-slot column didn't supply one), a 2–3 letter MLB
// team abbreviation, and an auction price.
func scanAdjacent(row []workbook.Cell, nameCol int, rec *StatRecord) {
	for c := nameCol + 1; c <= nameCol+adjacentScanWidth && c < len(row); c++ {
		v := strings.TrimSpace(row[c].Value)
		if v == "" {
			continue
		}
		switch {
		case rec.Position == "" && IsPositionToken(v):
			rec.Position = strings.ToUpper(v)
		case rec.Price == 0 && isAuctionPrice(v):
			rec.Price, _ = strconv.Atoi(v)
		case rec.Stats["mlb_team"] == "" && isMLBAbbreviation(v):
			rec.Stats["mlb_team"] = strings.ToUpper(v)
		}
	}
}

func isAuctionPrice(v string) bool {
	n, err := strconv.Atoi(v)
	return err == nil && n >= minAuctionPrice && n <= maxAuctionPrice
}

func isMLBAbbreviation(v string) bool {
	if len(v) < 2 || len(v) > 3 || IsPositionToken(v) {
		return false
	}
	for _, r := range v {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

func isTerminatorRow(row []workbook.Cell) bool {
	for _, cell := range row {
		if containsAny(strings.ToLower(cell.Value), gridTerminatorKeywords) {
			return true
		}
	}
	return false
}

// sectionHeaderRow reports whether any cell in the row is an explicit
// hitter/pitcher section header, and the state after applying it.
func sectionHeaderRow(row []workbook.Cell, s rosterSection) (rosterSection, bool) {
	for _, cell := range row {
		if next, ok := s.applyKeyword(cell.Value); ok {
			return next, true
		}
	}
	return s, false
}

// validateRosterSizes logs the end-of-period warning table for teams whose
// emitted player count doesn't match the era's expected roster size. Purely
// informational; never blocks persistence.
func validateRosterSizes(perTeam map[string]int, rosterCap int, res *Result) {
	for team, n := range perTeam {
		if n > rosterCap {
			n = rosterCap // the overflow sentinel bumped past the cap after warning
		}
		if n != rosterCap {
			res.Warnf("team %s emitted %d players, expected roster size %d", team, n, rosterCap)
		}
	}
}
