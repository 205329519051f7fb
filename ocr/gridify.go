package ocr

import (
	"regexp"
	"strings"

	"github.com/pricelens/pricelens/grid"
)

// cellGap matches the whitespace runs tesseract emits between columns:
// two or more spaces, or any tab.
var cellGap = regexp.MustCompile(`\t| {2,}`)

// Gridify converts recognized page text into a grid. Each non-blank line
// becomes a row; cells split on tabs and runs of two or more spaces,
// which is how column gaps survive recognition. Single spaces stay
// inside a cell so multi-word names hold together.
func Gridify(text string) *grid.Grid {
	var rows [][]grid.Cell
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := cellGap.Split(strings.TrimLeft(line, " \t"), -1)
		cells := make([]grid.Cell, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, grid.Unparsed(p))
		}
		rows = append(rows, cells)
	}
	return grid.New(rows)
}
