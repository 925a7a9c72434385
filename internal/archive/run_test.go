package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

// fakeStore is the in-memory Store used by engine tests. It mirrors the
// Postgres store's season contract: an import replaces the period numbers it
// carries and deletes any stored period the workbook no longer has.
type fakeStore struct {
	identities []Identity
	kbErr      error
	importErr  error

	imported []SeasonImport
	runs     []RunRecord

	periods    map[int]map[int][]StatRecord // year -> period number -> records
	lastCounts ImportCounts
}

func (f *fakeStore) LoadKnowledgeBase(_ context.Context, _ string) ([]Identity, error) {
	return f.identities, f.kbErr
}

func (f *fakeStore) ImportSeason(_ context.Context, imp SeasonImport) (ImportCounts, error) {
	if f.importErr != nil {
		return ImportCounts{}, f.importErr
	}
	f.imported = append(f.imported, imp)

	if f.periods == nil {
		f.periods = make(map[int]map[int][]StatRecord)
	}
	season := f.periods[imp.Year]
	if season == nil {
		season = make(map[int][]StatRecord)
		f.periods[imp.Year] = season
	}

	var counts ImportCounts
	kept := make(map[int]bool, len(imp.Periods))
	for _, p := range imp.Periods {
		kept[p.Period.Number] = true
		season[p.Period.Number] = p.Records
		counts.PeriodsUpserted++
		counts.RecordsInserted += len(p.Records)
	}
	for n := range season {
		if !kept[n] {
			delete(season, n)
			counts.OrphanPeriods++
		}
	}
	counts.DraftRowsInserted = len(imp.Draft)
	counts.StandingsInserted = len(imp.Standings)
	f.lastCounts = counts
	return counts, nil
}

// periodNumbers reports the period numbers currently stored for a year.
func (f *fakeStore) periodNumbers(year int) []int {
	nums := make([]int, 0, len(f.periods[year]))
	for n := range f.periods[year] {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

func (f *fakeStore) RecordRun(_ context.Context, rec RunRecord) error {
	f.runs = append(f.runs, rec)
	return nil
}

// testWorkbook builds a small but complete 2024 season workbook: a draft grid,
// one period grid, one vertical period table, a standings sheet, and an
// ignorable transactions tab.
func testWorkbook() *workbook.Static {
	draft := [][]workbook.Cell{
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show"),
		{{Value: ""}, {Value: "Mike Trout", Bold: true}, {Value: "Gerrit Cole"}, {Value: "Joey Votto"}},
		row("", "Buster Posey", "Justin Verlander", "Prince Fielder"),
	}
	grid := [][]workbook.Cell{
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show", "Raging Sluggers"),
		row("C", "Buster Posey", "Joe Mauer", "Yadier Molina", "Brian McCann"),
		row("SP", "Clayton Kershaw", "Justin Verlander", "Felix Hernandez", "Cliff Lee"),
	}
	vertical := [][]workbook.Cell{
		row("Player", "Team", "Pos", "HR"),
		row("Mike Trout", "Dodger Dawgs", "OF", "45"),
		row("Trout, M", "Dodger Dawgs", "OF", "45"),
	}
	standings := [][]workbook.Cell{
		row("Team", "Total", "Rank"),
		row("Dodger Dawgs", "30", "1"),
		row("The Show", "27", "2"),
	}
	return &workbook.Static{
		Order: []string{"Draft", "4.15", "June 12", "Final Standings", "Transactions"},
		Sheets: map[string][][]workbook.Cell{
			"Draft":           draft,
			"4.15":            grid,
			"June 12":         vertical,
			"Final Standings": standings,
			"Transactions":    {row("not imported")},
		},
	}
}

func newTestEngine(st Store, auditDir string) *Engine {
	return &Engine{
		Teams:    NewTeamResolver(DefaultAliases),
		Store:    st,
		LeagueID: "dawgpound",
		AuditDir: auditDir,
	}
}

func TestEngineRun(t *testing.T) {
	st := &fakeStore{
		identities: []Identity{
			{RawName: "Mike Trout", FullName: "Mike Trout", PlayerID: "trout01", Pitcher: false},
		},
	}
	e := newTestEngine(st, t.TempDir())

	res := e.Run(context.Background(), testWorkbook(), 2024)
	require.True(t, res.Success)
	require.Equal(t, 3, res.PeriodsImported) // draft + grid + vertical
	require.Equal(t, 2, res.StandingRows)
	require.Equal(t, 6, res.DraftPicks)

	require.Len(t, st.imported, 1)
	imp := st.imported[0]
	require.Equal(t, "dawgpound", imp.LeagueID)
	require.Equal(t, 2024, imp.Year)

	// Period table: draft opens the season, the vertical sheet closes it.
	require.Len(t, imp.Periods, 3)
	require.Equal(t, 1, imp.Periods[0].Period.Number)
	require.Equal(t, "Draft", imp.Periods[0].Period.SourceSheet)
	require.True(t, imp.Periods[0].Period.Start.Equal(date(2024, 3, 28)))
	require.True(t, imp.Periods[2].Period.End.Equal(date(2024, 9, 30)))

	// Identity resolution: the exact raw-name hit and the fuzzy lookup both
	// resolve to the knowledge-base identity.
	june := imp.Periods[2].Records
	require.Len(t, june, 2)
	for _, rec := range june {
		require.Equal(t, "trout01", rec.PlayerID)
		require.Equal(t, "Mike Trout", rec.ResolvedName)
	}
	require.Equal(t, 1, res.FuzzyMatches) // only "Trout, M" needed the fuzzy path

	require.NotNil(t, imp.Draft)
	require.NotNil(t, imp.Standings)

	// The run row is always recorded.
	require.Len(t, st.runs, 1)
	require.True(t, st.runs[0].Success)
	require.Equal(t, 2024, st.runs[0].Year)

	// Audit files landed in the audit directory.
	entries, err := os.ReadDir(e.AuditDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, de := range entries {
		names = append(names, de.Name())
	}
	require.Contains(t, names, "period_dates_2024.csv")
	require.Contains(t, names, "draft_2024.csv")
	require.Contains(t, names, "standings_2024.csv")
	require.Contains(t, names, "period_2_2024.csv")
}

// Importing the same workbook twice hands the store two identical season
// imports; idempotence is the store's delete-and-replace contract, so the
// engine's job is to produce the same normalized output both times.
func TestEngineRunRepeatable(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, t.TempDir())

	first := e.Run(context.Background(), testWorkbook(), 2024)
	second := e.Run(context.Background(), testWorkbook(), 2024)
	require.True(t, first.Success)
	require.True(t, second.Success)

	require.Len(t, st.imported, 2)
	require.Equal(t, st.imported[0].Periods, st.imported[1].Periods)
	require.Equal(t, st.imported[0].Draft, st.imported[1].Draft)
	require.Equal(t, st.imported[0].Standings, st.imported[1].Standings)
}

// Re-importing a season from a workbook that lost a period sheet deletes the
// stored rows for the vanished period instead of leaving them stranded.
func TestEngineRunOrphanCleanup(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, t.TempDir())

	res := e.Run(context.Background(), testWorkbook(), 2024)
	require.True(t, res.Success)
	require.Equal(t, []int{1, 2, 3}, st.periodNumbers(2024))
	require.Equal(t, 0, st.lastCounts.OrphanPeriods)

	// Same season, but the June sheet is gone from the workbook.
	wb := testWorkbook()
	delete(wb.Sheets, "June 12")
	wb.Order = []string{"Draft", "4.15", "Final Standings", "Transactions"}

	res = e.Run(context.Background(), wb, 2024)
	require.True(t, res.Success)
	require.Equal(t, []int{1, 2}, st.periodNumbers(2024))
	require.Equal(t, 1, st.lastCounts.OrphanPeriods)
}

func TestEngineRunDryRun(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, t.TempDir())
	e.DryRun = true

	res := e.Run(context.Background(), testWorkbook(), 2024)
	require.True(t, res.Success)
	require.Empty(t, st.imported) // no store writes
	require.Len(t, st.runs, 1)    // but the run row is still recorded
	require.True(t, st.runs[0].DryRun)
}

func TestEngineRunKnowledgeBaseFailureIsFatal(t *testing.T) {
	st := &fakeStore{kbErr: errors.New("connection refused")}
	e := newTestEngine(st, t.TempDir())

	res := e.Run(context.Background(), testWorkbook(), 2024)
	require.False(t, res.Success)
	require.Empty(t, st.imported)
}

func TestEngineRunImportFailure(t *testing.T) {
	st := &fakeStore{importErr: errors.New("deadlock detected")}
	e := newTestEngine(st, t.TempDir())

	res := e.Run(context.Background(), testWorkbook(), 2024)
	require.False(t, res.Success)
	require.Len(t, st.runs, 1)
	require.False(t, st.runs[0].Success)
}

func TestEngineRunNoPeriods(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, t.TempDir())

	wb := &workbook.Static{
		Order:  []string{"Transactions", "Rosters"},
		Sheets: map[string][][]workbook.Cell{"Transactions": nil, "Rosters": nil},
	}
	res := e.Run(context.Background(), wb, 2024)
	require.False(t, res.Success)
	require.Empty(t, st.imported)
}

// A sheet no detector understands is contained: the period yields no records,
// a raw dump lands in the audit directory, and the rest of the run proceeds.
func TestEngineRunUndetectableSheetContained(t *testing.T) {
	st := &fakeStore{}
	e := newTestEngine(st, t.TempDir())

	wb := testWorkbook()
	wb.Order = append(wb.Order, "5.1")
	wb.Sheets["5.1"] = [][]workbook.Cell{row("free-form notes"), row("nothing tabular")}

	res := e.Run(context.Background(), wb, 2024)
	require.True(t, res.Success)
	require.Len(t, st.imported, 1)

	dumpPath := filepath.Join(e.AuditDir, "rawdump_5.1_2024.csv")
	_, err := os.Stat(dumpPath)
	require.NoError(t, err)
}
