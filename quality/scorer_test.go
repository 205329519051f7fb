package quality

import (
	"testing"

	"github.com/pricelens/pricelens/grid"
)

func TestScore_EmptyGrid(t *testing.T) {
	s := New()

	if got := s.Score(grid.New(nil)); got != 0 {
		t.Errorf("Score(empty) = %v, want 0", got)
	}
}

func TestScore_DenseTableBeatsSparse(t *testing.T) {
	s := New()

	dense := grid.FromStrings([][]string{
		{"Imported Parmesan Cheese", "125000", "kg"},
		{"Belgian Dark Chocolate", "88000", "kg"},
		{"Norwegian Smoked Salmon", "210000", "kg"},
	})
	sparse := grid.FromStrings([][]string{
		{"Imported Parmesan Cheese", "", ""},
		{"", "", ""},
		{"", "", "note"},
	})

	if s.Score(dense) <= s.Score(sparse) {
		t.Errorf("dense score %v should exceed sparse score %v", s.Score(dense), s.Score(sparse))
	}
}

func TestScore_Range(t *testing.T) {
	s := New()

	g := grid.FromStrings([][]string{
		{"Premium Olive Oil Bottle", "95000"},
		{"Aged Balsamic Vinegar", "74000"},
	})

	score := s.Score(g)
	if score < 0 || score > 1 {
		t.Errorf("Score = %v, want within [0,1]", score)
	}
	if score == 0 {
		t.Error("product/price grid should not score 0")
	}
}

func TestScore_PriceOnlyGridScoresLowerThanMixed(t *testing.T) {
	s := New()

	mixed := grid.FromStrings([][]string{
		{"Organic Almond Butter", "56000"},
		{"Raw Forest Honey", "43000"},
	})
	pricesOnly := grid.FromStrings([][]string{
		{"120000", "56000"},
		{"99000", "43000"},
	})

	if s.Score(mixed) <= s.Score(pricesOnly) {
		t.Errorf("mixed grid %v should outscore prices-only grid %v", s.Score(mixed), s.Score(pricesOnly))
	}
}

func TestScore_ProductNamesWithDigitsCountAsProducts(t *testing.T) {
	s := New()

	// Product weight exceeds price weight, so names carrying plausible
	// numbers must land on the product side of the judgement.
	names := grid.FromStrings([][]string{
		{"Widget Model 15000"},
		{"Widget Model 18000"},
		{"Widget Model 21000"},
	})
	numbers := grid.FromStrings([][]string{
		{"15000"},
		{"18000"},
		{"21000"},
	})

	if s.Score(names) <= s.Score(numbers) {
		t.Errorf("name grid %v should outscore bare-number grid %v", s.Score(names), s.Score(numbers))
	}
}
