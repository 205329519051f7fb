package htmlgrid

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_SimpleTable(t *testing.T) {
	src := `<html><body>
	<h1>Price list</h1>
	<table>
		<tr><th>Product</th><th>Unit</th><th>Price</th></tr>
		<tr><td>Premium Ground Beef</td><td>kg</td><td>120000</td></tr>
		<tr><td>Free Range Chicken</td><td>kg</td><td>65000</td></tr>
	</table>
	</body></html>`

	grids, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}

	g := grids[0]
	if g.RowCount() != 3 || g.ColCount() != 3 {
		t.Fatalf("grid is %dx%d, want 3x3", g.RowCount(), g.ColCount())
	}
	if got := g.Cell(1, 0).Text; got != "Premium Ground Beef" {
		t.Errorf("cell (1,0) = %q", got)
	}
	if got := g.Cell(0, 2).Text; got != "Price" {
		t.Errorf("header cells should be read like data cells, got %q", got)
	}
}

func TestParse_TheadTbodyAndMarkupInsideCells(t *testing.T) {
	src := `<table>
	<thead><tr><th>Product</th><th>Price</th></tr></thead>
	<tbody>
		<tr><td><b>Organic</b> <i>Carrots</i></td><td><span>18 000</span></td></tr>
		<tr><td>
			Free Range
			Chicken
		</td><td>65000</td></tr>
	</tbody>
	</table>`

	grids, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	g := grids[0]
	if g.RowCount() != 3 {
		t.Fatalf("rows from thead and tbody should both count, got %d", g.RowCount())
	}
	if got := g.Cell(1, 0).Text; got != "Organic Carrots" {
		t.Errorf("inline markup should flatten to text, got %q", got)
	}
	if got := g.Cell(2, 0).Text; got != "Free Range Chicken" {
		t.Errorf("source formatting whitespace should collapse, got %q", got)
	}
}

func TestParse_MultipleTables(t *testing.T) {
	src := `<body>
	<table><tr><td>Beef</td><td>120000</td></tr></table>
	<table><tr><td>Chicken</td><td>65000</td></tr></table>
	</body>`

	grids, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(grids) != 2 {
		t.Fatalf("got %d grids, want 2 in document order", len(grids))
	}
	if grids[1].Cell(0, 0).Text != "Chicken" {
		t.Errorf("second table first cell = %q", grids[1].Cell(0, 0).Text)
	}
}

func TestParse_NoTables(t *testing.T) {
	if _, err := Parse(strings.NewReader("<p>no tables here</p>")); !errors.Is(err, ErrNoTables) {
		t.Errorf("error = %v, want ErrNoTables", err)
	}
}

func TestParse_EmptyTableSkipped(t *testing.T) {
	src := `<table></table><table><tr><td>Beef</td><td>120000</td></tr></table>`

	grids, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(grids) != 1 {
		t.Errorf("empty tables should be skipped, got %d grids", len(grids))
	}
}
