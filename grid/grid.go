// Package grid provides the in-memory table model shared by every analysis
// stage. A Grid is a rectangular arrangement of typed cells built once per
// worksheet or detected table and treated as immutable downstream.
package grid

import (
	"strconv"
	"strings"
)

// CellKind identifies the type of value a cell carries.
type CellKind int

const (
	// KindEmpty indicates a cell with no value.
	KindEmpty CellKind = iota
	// KindText indicates a cell carrying cleaned text.
	KindText
	// KindNumber indicates a cell carrying an already-typed numeric value,
	// as produced by spreadsheet readers.
	KindNumber
	// KindUnparsed indicates raw text that has not been normalized, as
	// produced by PDF text extraction or OCR.
	KindUnparsed
)

// String returns the string representation of the cell kind.
func (k CellKind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindUnparsed:
		return "unparsed"
	default:
		return "unknown"
	}
}

// Cell is a tagged value. Classifiers switch on Kind rather than inspecting
// the payload fields directly.
type Cell struct {
	Kind   CellKind
	Text   string  // set for KindText and KindUnparsed
	Number float64 // set for KindNumber
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{Kind: KindEmpty}
}

// Text returns a text cell. Whitespace is trimmed; a blank string produces
// an empty cell.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty()
	}
	return Cell{Kind: KindText, Text: s}
}

// Number returns a typed numeric cell.
func Number(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// Unparsed returns a cell carrying raw, unnormalized text.
func Unparsed(raw string) Cell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Empty()
	}
	return Cell{Kind: KindUnparsed, Text: raw}
}

// IsEmpty returns true if the cell has no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// String returns the cell's content as text. Numbers are rendered in their
// shortest exact form.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText, KindUnparsed:
		return c.Text
	default:
		return ""
	}
}

// Grid is an immutable rectangular table of cells. Every row has exactly
// ColCount cells; short input rows are padded with empty cells at
// construction time.
type Grid struct {
	rows [][]Cell
	cols int
}

// New builds a grid from rows of cells, padding short rows so that the
// result is rectangular. The input slices are not retained.
func New(rows [][]Cell) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}

	copied := make([][]Cell, len(rows))
	for i, r := range rows {
		row := make([]Cell, cols)
		copy(row, r)
		for j := len(r); j < cols; j++ {
			row[j] = Empty()
		}
		copied[i] = row
	}

	return &Grid{rows: copied, cols: cols}
}

// FromStrings builds a grid of text cells from raw string rows. Blank
// strings become empty cells.
func FromStrings(rows [][]string) *Grid {
	cells := make([][]Cell, len(rows))
	for i, r := range rows {
		row := make([]Cell, len(r))
		for j, s := range r {
			row[j] = Unparsed(s)
		}
		cells[i] = row
	}
	return New(cells)
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// ColCount returns the number of columns.
func (g *Grid) ColCount() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// IsEmpty returns true if the grid has no rows or no columns.
func (g *Grid) IsEmpty() bool {
	return g.RowCount() == 0 || g.ColCount() == 0
}

// Cell returns the cell at (row, col). Out-of-range coordinates return an
// empty cell.
func (g *Grid) Cell(row, col int) Cell {
	if g == nil || row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return Empty()
	}
	return g.rows[row][col]
}

// Row returns a copy of the cells in the given row.
func (g *Grid) Row(row int) []Cell {
	if g == nil || row < 0 || row >= len(g.rows) {
		return nil
	}
	out := make([]Cell, g.cols)
	copy(out, g.rows[row])
	return out
}

// FillRatio returns the fraction of non-empty cells in the grid (0-1).
func (g *Grid) FillRatio() float64 {
	total := g.RowCount() * g.ColCount()
	if total == 0 {
		return 0
	}
	filled := 0
	for _, row := range g.rows {
		for _, c := range row {
			if !c.IsEmpty() {
				filled++
			}
		}
	}
	return float64(filled) / float64(total)
}

// NonEmptyRowCount returns the number of rows containing at least one
// non-empty cell.
func (g *Grid) NonEmptyRowCount() int {
	count := 0
	for _, row := range g.rows {
		for _, c := range row {
			if !c.IsEmpty() {
				count++
				break
			}
		}
	}
	return count
}
