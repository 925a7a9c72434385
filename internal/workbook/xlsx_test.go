package workbook

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildTestWorkbook creates a two-sheet workbook with one bold cell, the way
// keeper names are marked in the historical files.
func buildTestWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "4.15"))
	_, err := f.NewSheet("Draft")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("4.15", "A1", "Player"))
	require.NoError(t, f.SetCellValue("4.15", "B1", "Team"))
	require.NoError(t, f.SetCellValue("4.15", "A2", "Mike Trout"))
	require.NoError(t, f.SetCellValue("4.15", "B2", "The Show"))
	require.NoError(t, f.SetCellValue("4.15", "A3", "Joey Votto"))

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("4.15", "A2", "A2", boldStyle))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestXLSXRows(t *testing.T) {
	wb, err := OpenReader(buildTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	require.Equal(t, []string{"4.15", "Draft"}, wb.SheetNames())

	rows, err := wb.Rows("4.15")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Player", "Team"}, RowValues(rows[0]))
	require.Equal(t, "Mike Trout", rows[1][0].Value)
	require.True(t, rows[1][0].Bold, "keeper cell must surface as bold")
	require.False(t, rows[0][0].Bold)
	require.False(t, rows[2][0].Bold)
}

func TestXLSXRowsUnknownSheet(t *testing.T) {
	wb, err := OpenReader(buildTestWorkbook(t))
	require.NoError(t, err)
	defer wb.Close()

	_, err = wb.Rows("nope")
	require.Error(t, err)
}

func TestStaticWorkbook(t *testing.T) {
	s := &Static{
		Order: []string{"a"},
		Sheets: map[string][][]Cell{
			"a": {{{Value: "x"}, {Value: "y"}}},
		},
	}
	require.Equal(t, []string{"a"}, s.SheetNames())
	rows, err := s.Rows("a")
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, RowValues(rows[0]))
}
