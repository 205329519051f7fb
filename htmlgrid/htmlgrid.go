// Package htmlgrid converts the <table> elements of an HTML document into
// grids. Price lists shared as exported web pages or email bodies usually
// keep their tabular structure in real table markup, which makes this the
// cheapest acquisition path for HTML input.
package htmlgrid

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/pricelens/pricelens/grid"
)

// ErrNoTables is returned when the document contains no table with
// content.
var ErrNoTables = errors.New("htmlgrid: document has no tables")

// ParseFile converts every <table> in the file at path into a grid.
func ParseFile(path string) ([]*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("htmlgrid: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse converts every <table> in the document into a grid, in document
// order. Header cells (<th>) and data cells (<td>) are treated alike;
// structure analysis decides later which row is the header.
func Parse(src io.Reader) ([]*grid.Grid, error) {
	doc, err := html.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("htmlgrid: parse: %w", err)
	}

	var grids []*grid.Grid
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if g := tableToGrid(n); !g.IsEmpty() {
				grids = append(grids, g)
			}
			return // nested tables are rare in price lists; keep the outermost
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(grids) == 0 {
		return nil, ErrNoTables
	}
	return grids, nil
}

func tableToGrid(table *html.Node) *grid.Grid {
	var rows [][]grid.Cell
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if cells := rowCells(n); len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		findRows(c)
	}
	return grid.New(rows)
}

func rowCells(tr *html.Node) []grid.Cell {
	var cells []grid.Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "td" && c.Data != "th" {
			continue
		}
		cells = append(cells, grid.Unparsed(nodeText(c)))
	}
	return cells
}

// nodeText concatenates the text content below n, collapsing the
// whitespace HTML source formatting introduces.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
