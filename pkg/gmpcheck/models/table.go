// Package models defines data structures for the GMP cross-check pipeline.
package models

// RawTable is a rectangular grid of untyped cell values as read from a file.
// Missing cells are empty strings.
type RawTable struct {
	// Rows holds the cell values row by row. Every row has Cols cells.
	Rows [][]string `json:"rows"`
	// Cols is the column count shared by every row.
	Cols int `json:"cols"`
}

// NewRawTable builds a RawTable from ragged rows, padding short rows with
// empty cells so that every row has the width of the widest one.
func NewRawTable(rows [][]string) *RawTable {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	grid := make([][]string, len(rows))
	for i, row := range rows {
		padded := make([]string, cols)
		copy(padded, row)
		grid[i] = padded
	}
	return &RawTable{Rows: grid, Cols: cols}
}

// Len returns the number of rows.
func (t *RawTable) Len() int {
	return len(t.Rows)
}

// StructuredTable is a RawTable with a unique, non-empty label per column.
type StructuredTable struct {
	// Labels holds one label per column, in column order.
	Labels []string `json:"labels"`
	// Rows holds the data rows below the header.
	Rows [][]string `json:"rows"`
	// HeaderRow is the index of the promoted header row in the raw grid, or -1 in blind mode.
	HeaderRow int `json:"header_row"`
}

// BlindMode reports whether no header row was located and labels are positional.
func (t *StructuredTable) BlindMode() bool {
	return t.HeaderRow < 0
}

// Len returns the number of data rows.
func (t *StructuredTable) Len() int {
	return len(t.Rows)
}

// Index returns the position of label, or -1.
func (t *StructuredTable) Index(label string) int {
	for i, l := range t.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// Cell returns the value of the labeled column in row r.
// The second result is false when the label or row does not exist.
func (t *StructuredTable) Cell(r int, label string) (string, bool) {
	c := t.Index(label)
	if c < 0 || r < 0 || r >= len(t.Rows) || c >= len(t.Rows[r]) {
		return "", false
	}
	return t.Rows[r][c], true
}
