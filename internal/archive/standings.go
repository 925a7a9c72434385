package archive

import (
	"strconv"
	"strings"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// Standings parsing: the standings sheet is always a vertical table — one row
// per team, category columns, a total and usually a rank. Ranks are taken
// from a "rank" column when present, otherwise assigned by row order.

// ParseStandings unrolls the standings sheet into per-team rows. Rows whose
// team cell cannot be resolved are logged and skipped; a missing header row
// means the sheet can't be read as standings at all.
func ParseStandings(rows [][]workbook.Cell, teams *TeamResolver, res *Result) []StandingRow {
	headerRow, ok := FindVerticalHeader(rows)
	if !ok {
		res.Warnf("standings sheet has no recognizable header row")
		return nil
	}

	labels := make([]string, len(rows[headerRow]))
	teamCol := -1
	for i, cell := range rows[headerRow] {
		labels[i] = normalizeLabel(cell.Value)
		if teamCol < 0 && (labels[i] == "team" || labels[i] == "team_code" || labels[i] == "franchise") {
			teamCol = i
		}
	}
	if teamCol < 0 {
		teamCol = 0
	}

	var standings []StandingRow
	for r := headerRow + 1; r < len(rows); r++ {
		row := rows[r]
		if teamCol >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[teamCol].Value)
		if raw == "" {
			continue
		}
		code := teams.Resolve(raw)
		if code == "" {
			res.Logf("standings row %d: %q is not a known team, skipped", r+1, raw)
			continue
		}

		s := StandingRow{TeamCode: code, Categories: map[string]string{}}
		for i, label := range labels {
			if i == teamCol || i >= len(row) || label == "" {
				continue
			}
			val := strings.TrimSpace(row[i].Value)
			if val == "" {
				continue
			}
			switch label {
			case "total", "total_points", "points":
				s.Total = val
			case "rank", "place":
				if n, err := strconv.Atoi(val); err == nil {
					s.Rank = n
				}
			default:
				s.Categories[label] = val
			}
		}
		if s.Rank == 0 {
			s.Rank = len(standings) + 1
		}
		standings = append(standings, s)
	}
	return standings
}
