package structure

import (
	"testing"

	"github.com/pricelens/pricelens/grid"
)

// Helper to build a text grid from string rows.
func makeGrid(rows ...[]string) *grid.Grid {
	return grid.FromStrings(rows)
}

func TestAnalyze_TabularWithHeader(t *testing.T) {
	a := New()

	g := makeGrid(
		[]string{"Product", "Price", "Unit"},
		[]string{"Good Product", "15000", "pcs"},
		[]string{"Premium Wheat Flour", "12500", "kg"},
		[]string{"Fresh Milk Bottle", "8500", "btl"},
	)

	c := a.Analyze(g)

	if c.Type != StructureTabular {
		t.Errorf("Type = %v, want tabular", c.Type)
	}
	if c.HeaderRow != 0 {
		t.Errorf("HeaderRow = %d, want 0", c.HeaderRow)
	}
	if c.DataStartRow != 1 {
		t.Errorf("DataStartRow = %d, want 1", c.DataStartRow)
	}
	if c.Confidence <= 0.8 {
		t.Errorf("Confidence = %v, want > 0.8", c.Confidence)
	}

	if cols := c.RoleColumns(RoleProduct); len(cols) != 1 || cols[0] != 0 {
		t.Errorf("product columns = %v, want [0]", cols)
	}
	if cols := c.RoleColumns(RolePrice); len(cols) != 1 || cols[0] != 1 {
		t.Errorf("price columns = %v, want [1]", cols)
	}
	if cols := c.RoleColumns(RoleUnit); len(cols) != 1 || cols[0] != 2 {
		t.Errorf("unit columns = %v, want [2]", cols)
	}

	for _, m := range c.Mappings {
		if m.Column >= g.ColCount() {
			t.Errorf("mapping column %d out of range", m.Column)
		}
		if m.Evidence != EvidenceKeyword {
			t.Errorf("column %d evidence = %v, want keyword", m.Column, m.Evidence)
		}
	}
}

func TestAnalyze_RussianHeader(t *testing.T) {
	a := New()

	g := makeGrid(
		[]string{"Наименование", "Цена", "Ед. изм."},
		[]string{"Мука пшеничная высший сорт", "1 250,50", "кг"},
		[]string{"Сахар песок", "990", "кг"},
	)

	c := a.Analyze(g)

	if c.Type != StructureTabular {
		t.Errorf("Type = %v, want tabular", c.Type)
	}
	if c.HeaderRow != 0 {
		t.Errorf("HeaderRow = %d, want 0", c.HeaderRow)
	}
}

func TestAnalyze_FuzzyHeaderKeyword(t *testing.T) {
	a := New()

	// OCR-mangled header tokens: one edit away from dictionary keywords.
	g := makeGrid(
		[]string{"Pruduct", "Prise"},
		[]string{"Canned Tomato Soup", "4500"},
		[]string{"Olive Oil Extra Virgin", "98000"},
	)

	c := a.Analyze(g)

	if c.HeaderRow != 0 {
		t.Fatalf("HeaderRow = %d, want 0 (fuzzy match)", c.HeaderRow)
	}

	var sawFuzzy bool
	for _, m := range c.Mappings {
		if m.Evidence == EvidenceFuzzyKeyword {
			sawFuzzy = true
		}
	}
	if !sawFuzzy {
		t.Error("expected at least one fuzzy-keyword mapping")
	}
}

func TestAnalyze_ContentHeuristicWithoutHeader(t *testing.T) {
	a := New()

	// No header row at all; roles must come from content sampling.
	g := makeGrid(
		[]string{"Smoked Chicken Breast", "25000", "kg"},
		[]string{"Frozen Green Peas", "18000", "kg"},
		[]string{"Organic Brown Rice", "32000", "kg"},
		[]string{"Extra Virgin Olive Oil", "99000", "btl"},
	)

	c := a.Analyze(g)

	if c.HeaderRow != -1 {
		t.Errorf("HeaderRow = %d, want -1", c.HeaderRow)
	}
	if c.DataStartRow != 0 {
		t.Errorf("DataStartRow = %d, want 0", c.DataStartRow)
	}
	if c.Type != StructureTabular {
		t.Errorf("Type = %v, want tabular", c.Type)
	}
	for _, m := range c.Mappings {
		if m.Evidence != EvidenceContent {
			t.Errorf("column %d evidence = %v, want content", m.Column, m.Evidence)
		}
	}
}

func TestAnalyze_ProductNamesWithEmbeddedNumbers(t *testing.T) {
	a := New()

	// Headerless, and every product name carries a plausible price-range
	// number. Product judgement runs first, so the name column must map
	// to product, not price.
	g := makeGrid(
		[]string{"Widget Model 15000", "25000"},
		[]string{"Widget Model 18000", "31000"},
		[]string{"Widget Model 21000", "27500"},
		[]string{"Widget Model 24000", "29900"},
	)

	c := a.Analyze(g)

	if c.Type != StructureTabular {
		t.Errorf("Type = %v, want tabular", c.Type)
	}
	if cols := c.RoleColumns(RoleProduct); len(cols) != 1 || cols[0] != 0 {
		t.Errorf("product columns = %v, want [0]", cols)
	}
	if cols := c.RoleColumns(RolePrice); len(cols) != 1 || cols[0] != 1 {
		t.Errorf("price columns = %v, want [1]", cols)
	}
}

func TestAnalyze_UnitColumnWithWordUnits(t *testing.T) {
	a := New()

	// Spelled-out units ("pack", "bottle") must not read as products even
	// though product is judged first.
	g := makeGrid(
		[]string{"Sunflower Oil Refined", "45000", "bottle"},
		[]string{"Wheat Flour Premium", "22000", "pack"},
		[]string{"Basmati Rice Golden", "78000", "pack"},
	)

	c := a.Analyze(g)

	if cols := c.RoleColumns(RoleUnit); len(cols) != 1 || cols[0] != 2 {
		t.Errorf("unit columns = %v, want [2]", cols)
	}
	if cols := c.RoleColumns(RoleProduct); len(cols) != 1 || cols[0] != 0 {
		t.Errorf("product columns = %v, want [0]", cols)
	}
}

func TestAnalyze_MultiColumn(t *testing.T) {
	a := New()

	// Two product/price pairs side by side.
	g := makeGrid(
		[]string{"Product", "Price", "Product", "Price"},
		[]string{"Arabica Coffee Beans", "85000", "Robusta Coffee Beans", "62000"},
		[]string{"Ceylon Black Tea", "45000", "Green Tea Sencha", "51000"},
	)

	c := a.Analyze(g)

	if c.Type != StructureMultiColumn {
		t.Errorf("Type = %v, want multi-column", c.Type)
	}
	if got := len(c.RoleColumns(RoleProduct)); got != 2 {
		t.Errorf("product columns = %d, want 2", got)
	}
}

func TestAnalyze_MixedSparse(t *testing.T) {
	a := New()

	// Product and price positions shuffle per row, so no column crosses a
	// role threshold and no header exists.
	g := makeGrid(
		[]string{"Dried Apricot Premium", "15000", ""},
		[]string{"21000", "Walnut Kernels Whole", ""},
		[]string{"", "17500", "Roasted Cashew Nuts"},
	)

	c := a.Analyze(g)

	if c.Type != StructureMixedSparse {
		t.Errorf("Type = %v, want mixed-sparse", c.Type)
	}
}

func TestAnalyze_EmptyGrid(t *testing.T) {
	a := New()

	c := a.Analyze(grid.New(nil))

	if c.Type != StructureUnknown {
		t.Errorf("Type = %v, want unknown", c.Type)
	}
	if c.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", c.Confidence)
	}
	if c.HeaderRow != -1 {
		t.Errorf("HeaderRow = %d, want -1", c.HeaderRow)
	}
}

func TestAnalyze_HeaderRequiresTwoRoles(t *testing.T) {
	a := New()

	// "Price" alone matches only one role, so the row must not qualify as a
	// header.
	g := makeGrid(
		[]string{"Price", "", ""},
		[]string{"Dutch Gouda Cheese", "54000", "kg"},
		[]string{"French Brie Classic", "61000", "kg"},
	)

	c := a.Analyze(g)

	if c.HeaderRow != -1 {
		t.Errorf("HeaderRow = %d, want -1 (single-role row is not a header)", c.HeaderRow)
	}
}

func TestAnalyze_ProductColumnQuality(t *testing.T) {
	a := New()

	g := makeGrid(
		[]string{"Product", "Price"},
		[]string{"Premium Basmati Rice 5kg", "78000"},
		[]string{"Jasmine Fragrant Rice 5kg", "69000"},
		[]string{"Sticky Glutinous Rice 2kg", "41000"},
	)

	c := a.Analyze(g)

	for _, m := range c.Mappings {
		if m.Role == RoleProduct && m.Quality <= 0.5 {
			t.Errorf("product column quality = %v, want > 0.5 for long multi-word values", m.Quality)
		}
	}
}
