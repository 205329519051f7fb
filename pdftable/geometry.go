package pdftable

import (
	"sort"

	"github.com/pricelens/pricelens/cascade"
	"github.com/pricelens/pricelens/grid"
)

// GeometryMethod recovers grids by clustering word left edges into column
// boundaries and assigning each word to the column it starts in. It works
// well on aligned, column-oriented layouts and fails cleanly on prose.
type GeometryMethod struct {
	config Config
}

// NewGeometryMethod creates a geometric method with default configuration.
func NewGeometryMethod() *GeometryMethod {
	return &GeometryMethod{config: DefaultConfig()}
}

// NewGeometryMethodWithConfig creates a geometric method with custom tolerances.
func NewGeometryMethodWithConfig(config Config) *GeometryMethod {
	return &GeometryMethod{config: config}
}

// Name identifies the method in cascade diagnostics.
func (m *GeometryMethod) Name() string {
	return "text-geometry"
}

// Extract reads the document's text layer and builds one grid per page
// that shows column-aligned structure.
func (m *GeometryMethod) Extract(path string) ([]cascade.Extraction, error) {
	pages, err := readPageWords(path, m.config)
	if err != nil {
		return nil, err
	}

	var out []cascade.Extraction
	for i, words := range pages {
		g := m.gridFromWords(words)
		if g == nil {
			continue
		}
		out = append(out, cascade.Extraction{Grid: g, Page: i + 1})
	}
	return out, nil
}

// gridFromWords aligns one page's words against clustered column
// boundaries. Returns nil when the page has no tabular structure.
func (m *GeometryMethod) gridFromWords(words []word) *grid.Grid {
	rows := groupRows(words, m.config.RowTolerance)
	if len(rows) < m.config.MinRows {
		return nil
	}

	boundaries := m.columnBoundaries(rows)
	if len(boundaries) < m.config.MinCols {
		return nil
	}

	cells := make([][]grid.Cell, len(rows))
	for i, row := range rows {
		texts := make([]string, len(boundaries))
		for _, w := range row {
			col := columnFor(boundaries, w.x, m.config.ColumnTolerance)
			if texts[col] == "" {
				texts[col] = w.text
			} else {
				texts[col] += " " + w.text
			}
		}
		cells[i] = make([]grid.Cell, len(boundaries))
		for j, s := range texts {
			cells[i][j] = grid.Unparsed(s)
		}
	}
	return grid.New(cells)
}

// columnBoundaries clusters word left edges within the column tolerance,
// averaging values that fall inside an existing cluster, then keeps only
// clusters supported by at least half the rows. Without the support
// filter, the ragged continuation words of multi-word names each spawn a
// phantom column.
func (m *GeometryMethod) columnBoundaries(rows [][]word) []float64 {
	var xs []float64
	for _, row := range rows {
		for _, w := range row {
			xs = append(xs, w.x)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)

	centers := []float64{xs[0]}
	counts := []int{1}
	for _, x := range xs[1:] {
		last := len(centers) - 1
		if x-centers[last] > m.config.ColumnTolerance {
			centers = append(centers, x)
			counts = append(counts, 1)
		} else {
			centers[last] = (centers[last] + x) / 2
			counts[last]++
		}
	}

	minSupport := (len(rows) + 1) / 2
	var boundaries []float64
	for i, c := range centers {
		if counts[i] >= minSupport {
			boundaries = append(boundaries, c)
		}
	}
	return boundaries
}

// columnFor returns the index of the rightmost boundary at or left of x,
// allowing the clustering tolerance of slack.
func columnFor(boundaries []float64, x, tolerance float64) int {
	col := 0
	for i, b := range boundaries {
		if x >= b-tolerance {
			col = i
		}
	}
	return col
}

var _ cascade.Method = (*GeometryMethod)(nil)
