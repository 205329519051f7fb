package pdftable

import (
	"github.com/pricelens/pricelens/cascade"
	"github.com/pricelens/pricelens/grid"
)

// StreamMethod recovers grids by splitting each row of words wherever a
// large horizontal gap appears. It tolerates ragged layouts the geometric
// method rejects, at the cost of less reliable column alignment, which is
// why it runs after the geometric method in the default cascade.
type StreamMethod struct {
	config Config
}

// NewStreamMethod creates a stream method with default configuration.
func NewStreamMethod() *StreamMethod {
	return &StreamMethod{config: DefaultConfig()}
}

// NewStreamMethodWithConfig creates a stream method with custom tolerances.
func NewStreamMethodWithConfig(config Config) *StreamMethod {
	return &StreamMethod{config: config}
}

// Name identifies the method in cascade diagnostics.
func (m *StreamMethod) Name() string {
	return "text-stream"
}

// Extract reads the document's text layer and builds one grid per page
// with enough gap-delimited rows.
func (m *StreamMethod) Extract(path string) ([]cascade.Extraction, error) {
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

// gridFromWords splits each row on horizontal gaps wider than the gap
// threshold. Rows that never split are prose lines; a page needs enough
// multi-cell rows to count as a table.
func (m *StreamMethod) gridFromWords(words []word) *grid.Grid {
	rows := groupRows(words, m.config.RowTolerance)
	if len(rows) < m.config.MinRows {
		return nil
	}

	split := make([][]string, len(rows))
	multiCell := 0
	maxCols := 0
	for i, row := range rows {
		split[i] = m.splitRow(row)
		if len(split[i]) >= m.config.MinCols {
			multiCell++
		}
		if len(split[i]) > maxCols {
			maxCols = len(split[i])
		}
	}
	if multiCell < m.config.MinRows || maxCols < m.config.MinCols {
		return nil
	}

	cells := make([][]grid.Cell, len(split))
	for i, row := range split {
		cells[i] = make([]grid.Cell, len(row))
		for j, s := range row {
			cells[i][j] = grid.Unparsed(s)
		}
	}
	return grid.New(cells)
}

// splitRow concatenates words into cells, starting a new cell at every
// gap wider than the threshold.
func (m *StreamMethod) splitRow(row []word) []string {
	if len(row) == 0 {
		return nil
	}

	var cells []string
	current := row[0].text
	prev := row[0]
	for _, w := range row[1:] {
		if w.x-prev.right() > m.config.GapThreshold {
			cells = append(cells, current)
			current = w.text
		} else {
			current += " " + w.text
		}
		prev = w
	}
	return append(cells, current)
}

var _ cascade.Method = (*StreamMethod)(nil)
