// Package sheet loads spreadsheet workbooks and ranks their sheets by how
// much price-list content they appear to hold.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pricelens/pricelens/grid"
	"github.com/pricelens/pricelens/quality"
)

// ErrNoSheets is returned when a workbook contains no sheet with enough
// rows to describe tabular data.
var ErrNoSheets = errors.New("sheet: workbook has no usable sheets")

// Sheet is one worksheet converted to a grid, with a content score used
// for ranking against its siblings.
type Sheet struct {
	Name  string
	Grid  *grid.Grid
	Score float64
}

// Reader converts xlsx workbooks into grids.
type Reader struct {
	scorer *quality.Scorer

	// minRows is the smallest sheet worth keeping. Anything shorter
	// cannot hold a header plus at least one data row.
	minRows int
}

// New creates a Reader with a default quality scorer.
func New() *Reader {
	return NewWithScorer(quality.New())
}

// NewWithScorer creates a Reader that ranks sheets with the given scorer.
func NewWithScorer(scorer *quality.Scorer) *Reader {
	return &Reader{scorer: scorer, minRows: 2}
}

// ReadFile opens the workbook at path and converts every usable sheet.
func (r *Reader) ReadFile(path string) ([]Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()
	return r.Read(f)
}

// Read converts every usable sheet from workbook data. Sheets appear in
// workbook order; use BestSheet to pick the most promising one.
func (r *Reader) Read(src io.Reader) ([]Sheet, error) {
	wb, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("sheet: parse workbook: %w", err)
	}
	defer wb.Close()

	var sheets []Sheet
	for _, name := range wb.GetSheetList() {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("sheet: read %q: %w", name, err)
		}
		if len(rows) < r.minRows {
			continue
		}
		g := toGrid(rows)
		if g.IsEmpty() {
			continue
		}
		sheets = append(sheets, Sheet{
			Name:  name,
			Grid:  g,
			Score: r.scorer.Score(g),
		})
	}

	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	return sheets, nil
}

// BestSheet returns the highest-scoring sheet. Ties go to the sheet with
// more non-empty rows, then to workbook order.
func BestSheet(sheets []Sheet) (Sheet, bool) {
	if len(sheets) == 0 {
		return Sheet{}, false
	}
	best := sheets[0]
	for _, s := range sheets[1:] {
		if s.Score > best.Score {
			best = s
			continue
		}
		if s.Score == best.Score && s.Grid.NonEmptyRowCount() > best.Grid.NonEmptyRowCount() {
			best = s
		}
	}
	return best, true
}

// toGrid converts raw cell strings to typed cells. Values that parse as
// plain floats become numbers so later stages can skip re-parsing them.
func toGrid(rows [][]string) *grid.Grid {
	cells := make([][]grid.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]grid.Cell, len(row))
		for j, raw := range row {
			cells[i][j] = toCell(raw)
		}
	}
	return grid.New(cells)
}

func toCell(raw string) grid.Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return grid.Empty()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return grid.Number(v)
	}
	return grid.Text(trimmed)
}
