package archive

import (
	"strings"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// Vertical-table unrolling: one row per player with named columns. Some
// workbooks place two or more side-by-side copies of the same columns on one
// sheet for readability; each copy is an independent sub-table keyed by its
// own "player"/"name" column.

const verticalHeaderScanRows = 50

// subTable is one repeated column block within a vertical sheet.
type subTable struct {
	nameCol int
	headers []string // normalized labels from nameCol to the next block
}

// FindVerticalHeader locates the header row of a vertical sheet: the first
// row within the scan window containing a "player" or "team" label.
// Returns ok=false when the sheet has no recognizable header at all.
func FindVerticalHeader(rows [][]workbook.Cell) (int, bool) {
	limit := len(rows)
	if limit > verticalHeaderScanRows {
		limit = verticalHeaderScanRows
	}
	for r := 0; r < limit; r++ {
		for _, cell := range rows[r] {
			v := strings.ToLower(strings.TrimSpace(cell.Value))
			if strings.Contains(v, "player") || strings.Contains(v, "team") {
				return r, true
			}
		}
	}
	return 0, false
}

// UnrollVertical zips each data row against the header labels of every
// sub-table on the sheet, producing one StatRecord per non-empty name slot.
func UnrollVertical(rows [][]workbook.Cell, headerRow int, teams *TeamResolver, res *Result) []StatRecord {
	tables := splitSubTables(rows[headerRow])
	if len(tables) == 0 {
		res.Warnf("vertical header row %d has no player/name column", headerRow+1)
		return nil
	}
	if len(tables) > 1 {
		res.Logf("vertical sheet carries %d side-by-side sub-tables", len(tables))
	}

	var records []StatRecord
	section := rosterSection{}

	for r := headerRow + 1; r < len(rows); r++ {
		row := rows[r]

		if next, ok := sectionHeaderRow(row, section); ok {
			section = next
			continue
		}

		for _, t := range tables {
			if t.nameCol >= len(row) {
				continue
			}
			name := strings.TrimSpace(row[t.nameCol].Value)
			if name == "" {
				continue
			}
			if IsPositionToken(name) {
				section = section.applyPosition(name)
				continue
			}

			rec := StatRecord{
				RawName: name,
				Keeper:  row[t.nameCol].Bold,
				Stats:   map[string]string{},
			}
			for i, label := range t.headers {
				col := t.nameCol + i
				if col >= len(row) || i == 0 {
					continue
				}
				val := strings.TrimSpace(row[col].Value)
				if val == "" {
					continue
				}
				switch label {
				case "team", "team_code", "franchise":
					rec.TeamCode = teams.Resolve(val)
					if rec.TeamCode == "" {
						rec.TeamCode = strings.ToUpper(val)
					}
				case "pos", "position":
					if IsPositionToken(val) {
						rec.Position = strings.ToUpper(val)
						section = section.applyPosition(val)
					}
				default:
					rec.Stats[label] = val
				}
			}
			rec.Pitcher = section.pitcher
			records = append(records, rec)
		}
	}
	return records
}

// splitSubTables finds every "player"/"name" label in the header row; each
// starts an independent sub-table whose headers run to the next one's start.
func splitSubTables(header []workbook.Cell) []subTable {
	var starts []int
	for i, cell := range header {
		v := normalizeLabel(cell.Value)
		if v == "player" || v == "name" || v == "player_name" {
			starts = append(starts, i)
		}
	}

	tables := make([]subTable, 0, len(starts))
	for i, start := range starts {
		end := len(header)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		labels := make([]string, 0, end-start)
		for _, cell := range header[start:end] {
			labels = append(labels, normalizeLabel(cell.Value))
		}
		tables = append(tables, subTable{nameCol: start, headers: labels})
	}
	return tables
}

// normalizeLabel lowercases a header label and collapses spaces to
// underscores so "Team Code" and "team_code" compare equal.
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
