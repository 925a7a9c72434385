package archive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dugoutclub/dugout-data/internal/workbook"
)

func TestUnrollGrid(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	rows := [][]workbook.Cell{
		row("", "Dodger Dawgs", "Devil Dawgs", "The Show", "Raging Sluggers"),
		row("C", "Buster Posey", "Joe Mauer", "Yadier Molina", "Brian McCann"),
		row("1B", "Albert Pujols", "Joey Votto", "Prince Fielder", "Adrian Gonzalez"),
		row("Pitchers"),
		row("SP", "Clayton Kershaw", "Justin Verlander", "Felix Hernandez", "Cliff Lee"),
		row("RP", "Craig Kimbrel", "Kenley Jansen", "Aroldis Chapman", "Jonathan Papelbon"),
		row("Totals", "260", "255", "248", "251"),
		row("", "this row is never reached"),
	}
	layout, ok := DetectGridLayout(rows, teams, false, res)
	require.True(t, ok)

	records := UnrollGrid(rows, layout, teams, 2012, res)
	require.Len(t, records, 16)

	byName := map[string]StatRecord{}
	for _, r := range records {
		byName[r.RawName] = r
	}

	require.Equal(t, "DD", byName["Buster Posey"].TeamCode)
	require.Equal(t, "C", byName["Buster Posey"].Position)
	require.False(t, byName["Buster Posey"].Pitcher)

	require.Equal(t, "RAG", byName["Adrian Gonzalez"].TeamCode)
	require.Equal(t, "1B", byName["Adrian Gonzalez"].Position)

	// Everything below the "Pitchers" section header is a pitcher.
	for _, name := range []string{"Clayton Kershaw", "Kenley Jansen", "Jonathan Papelbon"} {
		require.True(t, byName[name].Pitcher, name)
	}
}

func TestUnrollGridAdjacentCells(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	layout := Layout{
		Mode:        LayoutGrid,
		HeaderRow:   0,
		TeamColumns: map[int]string{0: "DD"},
		PositionCol: -1,
	}
	rows := [][]workbook.Cell{
		row("Dodger Dawgs"),
		{{Value: "Mike Trout", Bold: true}, {Value: "OF"}, {Value: "LAA"}, {Value: "45"}},
		row("Gerrit Cole", "SP", "NYY", "38"),
	}
	records := UnrollGrid(rows, layout, teams, 2024, res)
	require.Len(t, records, 2)

	trout := records[0]
	require.Equal(t, "OF", trout.Position)
	require.Equal(t, "LAA", trout.Stats["mlb_team"])
	require.Equal(t, 45, trout.Price)
	require.True(t, trout.Keeper) // bold name cell
	require.False(t, trout.Pitcher)

	cole := records[1]
	require.Equal(t, "SP", cole.Position)
	require.True(t, cole.Pitcher) // SP token flips the section
	require.False(t, cole.Keeper)
}

func TestUnrollGridRosterCap(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	res := &Result{Success: true}

	layout := Layout{
		Mode:        LayoutGrid,
		HeaderRow:   0,
		TeamColumns: map[int]string{0: "SHO"},
		PositionCol: -1,
	}
	rows := [][]workbook.Cell{row("The Show")}
	for i := 1; i <= 31; i++ {
		rows = append(rows, row(fmt.Sprintf("Player Number %d", i)))
	}

	records := UnrollGrid(rows, layout, teams, 2024, res)
	require.Len(t, records, RosterCap(2024)) // 30 kept, 31st dropped

	var warned bool
	for _, m := range res.Messages {
		if m == "warning: team SHO exceeds the 30-player roster cap, extra rows ignored" {
			warned = true
		}
	}
	require.True(t, warned)
}

func TestUnrollGridNoiseFiltering(t *testing.T) {
	teams := NewTeamResolver(DefaultAliases)
	layout := Layout{
		Mode:        LayoutGrid,
		HeaderRow:   0,
		TeamColumns: map[int]string{0: "DD"},
		PositionCol: -1,
	}
	rows := [][]workbook.Cell{
		row("Dodger Dawgs"),
		row("C"),           // roster-slot token
		row("12.5"),        // numeric
		row("X"),           // single character
		row("Mudcats"),     // a team name is not a player
		row("Real Player"), // the only real record
	}
	records := UnrollGrid(rows, layout, teams, 2012, &Result{})
	require.Len(t, records, 1)
	require.Equal(t, "Real Player", records[0].RawName)
}

func TestRosterCapByEra(t *testing.T) {
	require.Equal(t, 23, RosterCap(2008))
	require.Equal(t, 23, RosterCap(2022))
	require.Equal(t, 30, RosterCap(2023))
	require.Equal(t, 30, RosterCap(2025))
}
