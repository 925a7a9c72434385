package archive

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// Audit output: one human-auditable CSV per period plus draft, standings and
// the period-date table. These files are the first thing anyone checks when a
// historical number looks wrong, so they carry the raw names alongside the
// resolved ones.

const dateLayout = "2006-01-02"

// AuditWriter writes the run's tabular audit files under one directory.
type AuditWriter struct {
	Dir  string
	Year int
}

// WritePeriodDates writes period_dates_<year>.csv.
func (w *AuditWriter) WritePeriodDates(periods []Period) error {
	rows := [][]string{{"period", "source_sheet", "start_date", "end_date"}}
	for _, p := range periods {
		rows = append(rows, []string{
			strconv.Itoa(p.Number), p.SourceSheet,
			p.Start.Format(dateLayout), p.End.Format(dateLayout),
		})
	}
	return w.writeFile(fmt.Sprintf("period_dates_%d.csv", w.Year), rows)
}

// WritePeriod writes period_<n>_<year>.csv with the flat stat records.
func (w *AuditWriter) WritePeriod(p Period, records []StatRecord) error {
	statKeys := collectStatKeys(records)
	header := []string{"raw_name", "resolved_name", "player_id", "team_code",
		"position", "is_pitcher", "is_keeper", "price"}
	header = append(header, statKeys...)

	rows := [][]string{header}
	for _, r := range records {
		row := []string{r.RawName, r.ResolvedName, r.PlayerID, r.TeamCode,
			r.Position, strconv.FormatBool(r.Pitcher), strconv.FormatBool(r.Keeper),
			strconv.Itoa(r.Price)}
		for _, k := range statKeys {
			row = append(row, r.Stats[k])
		}
		rows = append(rows, row)
	}
	return w.writeFile(fmt.Sprintf("period_%d_%d.csv", p.Number, w.Year), rows)
}

// WriteDraft writes draft_<year>.csv.
func (w *AuditWriter) WriteDraft(picks []DraftPick) error {
	rows := [][]string{{"team_code", "raw_name", "resolved_name", "position", "price", "is_keeper"}}
	for _, p := range picks {
		rows = append(rows, []string{
			p.TeamCode, p.RawName, p.ResolvedName, p.Position,
			strconv.Itoa(p.Price), strconv.FormatBool(p.Keeper),
		})
	}
	return w.writeFile(fmt.Sprintf("draft_%d.csv", w.Year), rows)
}

// WriteStandings writes standings_<year>.csv.
func (w *AuditWriter) WriteStandings(standings []StandingRow) error {
	catKeys := collectCategoryKeys(standings)
	header := append([]string{"team_code", "rank", "total"}, catKeys...)

	rows := [][]string{header}
	for _, s := range standings {
		row := []string{s.TeamCode, strconv.Itoa(s.Rank), s.Total}
		for _, k := range catKeys {
			row = append(row, s.Categories[k])
		}
		rows = append(rows, row)
	}
	return w.writeFile(fmt.Sprintf("standings_%d.csv", w.Year), rows)
}

// WriteRawDump writes the unstructured fallback for a sheet no detector could
// make sense of.
func (w *AuditWriter) WriteRawDump(sheet string, rows [][]workbook.Cell) error {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = workbook.RowValues(row)
	}
	return w.writeFile(fmt.Sprintf("rawdump_%s_%d.csv", sanitizeFilename(sheet), w.Year), out)
}

func (w *AuditWriter) writeFile(name string, rows [][]string) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}
	path := filepath.Join(w.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func collectStatKeys(records []StatRecord) []string {
	seen := map[string]bool{}
	for _, r := range records {
		for k := range r.Stats {
			seen[k] = true
		}
	}
	return sortedKeys(seen)
}

func collectCategoryKeys(standings []StandingRow) []string {
	seen := map[string]bool{}
	for _, s := range standings {
		for k := range s.Categories {
			seen[k] = true
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFilename(s string) string {
	return unsafeFilenameChars.ReplaceAllString(s, "_")
}
