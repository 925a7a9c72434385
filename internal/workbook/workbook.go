// Package workbook abstracts spreadsheet decoding for the archive engine.
// The engine only ever sees a workbook as named sheets of cells, each cell
// carrying its string value and whether it is rendered bold — keeper flags
// in the historical workbooks are encoded purely as bold text.
package workbook

// Cell is a single decoded spreadsheet cell.
type Cell struct {
	Value string
	Bold  bool
}

// Workbook is a fully decoded spreadsheet file.
type Workbook interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// Rows returns the sheet as a dense row-major grid. Rows may have
	// differing lengths; callers must bounds-check columns.
	Rows(sheet string) ([][]Cell, error)
}

// Static is an in-memory Workbook, used by tests and for synthesizing
// raw-dump fallbacks.
type Static struct {
	Order  []string
	Sheets map[string][][]Cell
}

// SheetNames implements Workbook.
func (s *Static) SheetNames() []string { return s.Order }

// Rows implements Workbook.
func (s *Static) Rows(sheet string) ([][]Cell, error) {
	return s.Sheets[sheet], nil
}

// RowValues flattens one row to its string values.
func RowValues(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Value
	}
	return out
}
