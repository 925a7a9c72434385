package workbook

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// XLSX decodes .xlsx workbooks via excelize. Cell emphasis is resolved
// through the cell's style: a cell is Bold when its style's font has the
// bold flag set.
type XLSX struct {
	f *excelize.File

	// font-bold lookup per style ID; styles repeat heavily across a sheet
	boldByStyle map[int]bool
}

// OpenFile decodes a workbook from disk.
func OpenFile(path string) (*XLSX, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return OpenReader(bytes.NewReader(data))
}

// OpenReader decodes a workbook from a stream.
func OpenReader(r io.Reader) (*XLSX, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &XLSX{f: f, boldByStyle: make(map[int]bool)}, nil
}

// Close releases the underlying file.
func (x *XLSX) Close() error { return x.f.Close() }

// SheetNames implements Workbook.
func (x *XLSX) SheetNames() []string { return x.f.GetSheetList() }

// Rows implements Workbook.
func (x *XLSX) Rows(sheet string) ([][]Cell, error) {
	rows, err := x.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	out := make([][]Cell, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, val := range row {
			cells[c] = Cell{Value: val}
			if val == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			cells[c].Bold = x.cellBold(sheet, axis)
		}
		out[r] = cells
	}
	return out, nil
}

// cellBold reports whether the cell's font is bold. Style lookups that fail
// are treated as not bold — emphasis is a hint, never load-bearing for
// correctness of the parse.
func (x *XLSX) cellBold(sheet, axis string) bool {
	styleID, err := x.f.GetCellStyle(sheet, axis)
	if err != nil {
		return false
	}
	if bold, ok := x.boldByStyle[styleID]; ok {
		return bold
	}
	bold := false
	if style, err := x.f.GetStyle(styleID); err == nil && style != nil && style.Font != nil {
		bold = style.Font.Bold
	}
	x.boldByStyle[styleID] = bold
	return bold
}
