package archive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

func row(values ...string) []workbook.Cell {
	cells := make([]workbook.Cell, len(values))
	for i, v := range values {
		cells[i] = workbook.Cell{Value: v}
	}
	return cells
}

func TestDetectGridLayout(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	rows := [][]workbook.Cell{
		row("League Rosters as of 4/15"),
		row(""),
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show", "Raging Sluggers"),
		row("C", "Buster Posey", "Joe Mauer", "Yadier Molina", "Brian McCann"),
		row("1B", "Albert Pujols", "Joey Votto", "Prince Fielder", "Adrian Gonzalez"),
	}

	layout, ok := DetectGridLayout(rows, teams, false, res)
	require.True(t, ok)
	require.Equal(t, LayoutGrid, layout.Mode)
	require.Equal(t, 2, layout.HeaderRow)
	require.Equal(t, map[int]string{1: "DD", 2: "DEV", 3: "SHO", 4: "RAG"}, layout.TeamColumns)
	require.Equal(t, 0, layout.PositionCol)
}

func TestDetectGridLayoutUnresolvedTeamGetsPlaceholder(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	rows := [][]workbook.Cell{
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show", "Expansion Franchise"),
	}
	layout, ok := DetectGridLayout(rows, teams, false, res)
	require.True(t, ok)
	require.Equal(t, "UNK-4", layout.TeamColumns[4])
}

// Three team cells is enough for a draft sheet but not for a period sheet.
func TestDetectGridLayoutDraftThreshold(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	rows := [][]workbook.Cell{
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show"),
	}

	_, ok := DetectGridLayout(rows, teams, false, &Result{})
	require.False(t, ok)

	layout, ok := DetectGridLayout(rows, teams, true, &Result{})
	require.True(t, ok)
	require.Len(t, layout.TeamColumns, 3)
}

// A standardized flat-table header always routes to the vertical unroller,
// even if team names appear further down the sheet.
func TestDetectGridLayoutStandardizedHeaderWins(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	rows := [][]workbook.Cell{
		row("player_name", "team_code", "position", "hr"),
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show", "Raging Sluggers"),
	}
	_, ok := DetectGridLayout(rows, teams, false, &Result{})
	require.False(t, ok)

	headerRow, ok := FindVerticalHeader(rows)
	require.True(t, ok)
	require.Equal(t, 0, headerRow)
}

func TestFindVerticalHeader(t *testing.T) {
	rows := [][]workbook.Cell{
		row("Week 3 results"),
		row(""),
		row("Player", "Team", "HR", "RBI"),
	}
	headerRow, ok := FindVerticalHeader(rows)
	require.True(t, ok)
	require.Equal(t, 2, headerRow)

	_, ok = FindVerticalHeader([][]workbook.Cell{row("nothing"), row("here")})
	require.False(t, ok)
}

func TestIsPositionToken(t *testing.T) {
	for _, tok := range []string{"C", "1B", "SS", "sp", " OF ", "IL1", "UT"} {
		require.True(t, IsPositionToken(tok), tok)
	}
	for _, tok := range []string{"Mike Trout", "4B", "", "Total"} {
		require.False(t, IsPositionToken(tok), tok)
	}
}
