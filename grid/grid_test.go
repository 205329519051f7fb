package grid

import "testing"

func TestNew_PadsShortRows(t *testing.T) {
	g := New([][]Cell{
		{Text("Product"), Text("Price"), Text("Unit")},
		{Text("Flour 1kg"), Number(1200)},
		{Text("Sugar")},
	})

	if g.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", g.RowCount())
	}
	if g.ColCount() != 3 {
		t.Errorf("ColCount() = %d, want 3", g.ColCount())
	}

	if c := g.Cell(1, 2); !c.IsEmpty() {
		t.Errorf("padded cell (1,2) = %v, want empty", c)
	}
	if c := g.Cell(2, 1); !c.IsEmpty() {
		t.Errorf("padded cell (2,1) = %v, want empty", c)
	}
}

func TestNew_EmptyInput(t *testing.T) {
	g := New(nil)

	if !g.IsEmpty() {
		t.Error("expected empty grid")
	}
	if g.FillRatio() != 0 {
		t.Errorf("FillRatio() = %v, want 0", g.FillRatio())
	}
}

func TestCell_Constructors(t *testing.T) {
	if c := Text("  "); !c.IsEmpty() {
		t.Error("blank Text should produce an empty cell")
	}
	if c := Unparsed(" 1 234,56 "); c.Kind != KindUnparsed || c.Text != "1 234,56" {
		t.Errorf("Unparsed trimmed = %q, kind %v", c.Text, c.Kind)
	}
	if c := Number(99.5); c.String() != "99.5" {
		t.Errorf("Number(99.5).String() = %q, want \"99.5\"", c.String())
	}
	if c := Number(1500); c.String() != "1500" {
		t.Errorf("Number(1500).String() = %q, want \"1500\"", c.String())
	}
}

func TestGrid_OutOfRangeAccess(t *testing.T) {
	g := New([][]Cell{{Text("a")}})

	if c := g.Cell(5, 5); !c.IsEmpty() {
		t.Error("out-of-range access should return empty cell")
	}
	if c := g.Cell(-1, 0); !c.IsEmpty() {
		t.Error("negative index should return empty cell")
	}
	if r := g.Row(3); r != nil {
		t.Errorf("Row(3) = %v, want nil", r)
	}
}

func TestGrid_FillRatio(t *testing.T) {
	g := New([][]Cell{
		{Text("a"), Empty()},
		{Empty(), Empty()},
	})

	if got := g.FillRatio(); got != 0.25 {
		t.Errorf("FillRatio() = %v, want 0.25", got)
	}
}

func TestGrid_NonEmptyRowCount(t *testing.T) {
	g := New([][]Cell{
		{Text("a"), Empty()},
		{Empty(), Empty()},
		{Empty(), Number(10)},
	})

	if got := g.NonEmptyRowCount(); got != 2 {
		t.Errorf("NonEmptyRowCount() = %d, want 2", got)
	}
}

func TestFromStrings(t *testing.T) {
	g := FromStrings([][]string{
		{"Product", "Price"},
		{"Rice 5kg", "12,500"},
		{"", ""},
	})

	if g.ColCount() != 2 {
		t.Errorf("ColCount() = %d, want 2", g.ColCount())
	}
	if c := g.Cell(1, 1); c.Kind != KindUnparsed || c.Text != "12,500" {
		t.Errorf("cell (1,1) = %+v, want unparsed \"12,500\"", c)
	}
	if c := g.Cell(2, 0); !c.IsEmpty() {
		t.Error("blank string should become an empty cell")
	}
}
