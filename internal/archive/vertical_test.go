package archive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

func TestUnrollVertical(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	rows := [][]workbook.Cell{
		row("Player", "Team", "Pos", "HR", "RBI"),
		{{Value: "Mike Trout", Bold: true}, {Value: "The Show"}, {Value: "OF"}, {Value: "45"}, {Value: "104"}},
		row("Joey Votto", "Dodger Dawgs", "1B", "24", "80"),
		row(""),
		row("Gerrit Cole", "Devil Dawgs", "SP", "0", "0"),
	}
	records := UnrollVertical(rows, 0, teams, res)
	require.Len(t, records, 3)

	trout := records[0]
	require.Equal(t, "Mike Trout", trout.RawName)
	require.Equal(t, "SHO", trout.TeamCode)
	require.Equal(t, "OF", trout.Position)
	require.Equal(t, "45", trout.Stats["hr"])
	require.Equal(t, "104", trout.Stats["rbi"])
	require.True(t, trout.Keeper)
	require.False(t, trout.Pitcher)

	cole := records[2]
	require.Equal(t, "DEV", cole.TeamCode)
	require.True(t, cole.Pitcher)
}

// Side-by-side sub-tables are unrolled independently; the hitter/pitcher
// section state follows the position tokens as they are encountered.
func TestUnrollVerticalSideBySide(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	rows := [][]workbook.Cell{
		row("Player", "Team", "Pos", "HR", "", "Player", "Team", "Pos", "W"),
		row("Mike Trout", "The Show", "OF", "45", "", "Gerrit Cole", "Devil Dawgs", "SP", "15"),
		row("Joey Votto", "Dodger Dawgs", "1B", "24", "", "Max Scherzer", "Mudcats", "SP", "18"),
	}
	records := UnrollVertical(rows, 0, teams, res)
	require.Len(t, records, 4)

	byName := map[string]StatRecord{}
	for _, r := range records {
		byName[r.RawName] = r
	}

	require.False(t, byName["Mike Trout"].Pitcher)
	require.False(t, byName["Joey Votto"].Pitcher)
	require.True(t, byName["Gerrit Cole"].Pitcher)
	require.True(t, byName["Max Scherzer"].Pitcher)

	require.Equal(t, "MUD", byName["Max Scherzer"].TeamCode)
	require.Equal(t, "15", byName["Gerrit Cole"].Stats["w"])
	require.Equal(t, "24", byName["Joey Votto"].Stats["hr"])
}

// An unresolvable team cell keeps its uppercased raw value rather than being
// silently dropped; the audit file shows exactly what the sheet said.
func TestUnrollVerticalUnknownTeamKept(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	rows := [][]workbook.Cell{
		row("Player", "Team"),
		row("Somebody New", "xyz"),
	}
	records := UnrollVertical(rows, 0, teams, &Result{})
	require.Len(t, records, 1)
	require.Equal(t, "XYZ", records[0].TeamCode)
}

func TestUnrollVerticalNoNameColumn(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}
	rows := [][]workbook.Cell{
		row("Team", "HR", "RBI"),
		row("The Show", "45", "104"),
	}
	records := UnrollVertical(rows, 0, teams, res)
	require.Nil(t, records)
	require.Equal(t, 1, res.Warnings)
}

func TestSplitSubTables(t *testing.T) {
	header := row("Player", "Team", "HR", "", "Name", "Team", "W")
	tables := splitSubTables(header)
	require.Len(t, tables, 2)
	require.Equal(t, 0, tables[0].nameCol)
	require.Equal(t, []string{"player", "team", "hr", ""}, tables[0].headers)
	require.Equal(t, 4, tables[1].nameCol)
	require.Equal(t, []string{"name", "team", "w"}, tables[1].headers)
}
