package classify

import "testing"

func TestLooksLikeProduct(t *testing.T) {
	c := New()

	tests := []struct {
		token string
		want  bool
	}{
		{"Good Product", true},
		{"Fresh Milk 1L", true},
		{"Мука пшеничная 2кг", true},
		{"Minyak Goreng Bimoli 2L", true},
		{"123", false},
		{"1,234.56", false},
		{"ab", false},     // too short
		{"total", false},  // structural keyword
		{"Итого", false},  // localized structural keyword
		{"price", false},  // column label
		{"pcs", false},    // bare unit token
		{"Bottle", false}, // bare unit token, case-folded
		{"nan", false},    // null literal
		{"none", false},   // null literal
		{"", false},
		{"12 x 34", false}, // no alphabetic run of 3
	}

	for _, tt := range tests {
		if got := c.LooksLikeProduct(tt.token); got != tt.want {
			t.Errorf("LooksLikeProduct(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestLooksLikeProduct_LengthBounds(t *testing.T) {
	c := New()

	long := make([]rune, 201)
	for i := range long {
		long[i] = 'a'
	}
	if c.LooksLikeProduct(string(long)) {
		t.Error("201-rune token should be rejected")
	}
	if !c.LooksLikeProduct("abc") {
		t.Error("3-rune token should be accepted")
	}
}

func TestLooksLikePrice(t *testing.T) {
	c := New()

	tests := []struct {
		token string
		want  bool
	}{
		{"15000", true},
		{"1 234,56", true},
		{"$100.00", true},
		{"200 руб", true},
		{"invalid", false},
		{"5", false},          // below plausible price range
		{"999999999", false},  // above plausible price range
		{"", false},
		{"nan", false},
	}

	for _, tt := range tests {
		if got := c.LooksLikePrice(tt.token); got != tt.want {
			t.Errorf("LooksLikePrice(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestLooksLikeUnit(t *testing.T) {
	c := New()

	for _, u := range []string{"kg", "KG", "шт", " pcs ", "ikat", "liter"} {
		if !c.LooksLikeUnit(u) {
			t.Errorf("LooksLikeUnit(%q) = false, want true", u)
		}
	}
	for _, u := range []string{"kilograms-ish", "product", "", "None", "12"} {
		if c.LooksLikeUnit(u) {
			t.Errorf("LooksLikeUnit(%q) = true, want false", u)
		}
	}
}

func TestProductQuality(t *testing.T) {
	c := New()

	multi := c.ProductQuality("Premium Wheat Flour 25kg")
	single := c.ProductQuality("Flour")
	none := c.ProductQuality("123")

	if multi <= single {
		t.Errorf("multi-word quality %v should exceed single-word %v", multi, single)
	}
	if none != 0 {
		t.Errorf("quality of non-product = %v, want 0", none)
	}
	if multi > 1 {
		t.Errorf("quality %v exceeds 1", multi)
	}
}

func TestCustomVocabulary(t *testing.T) {
	config := DefaultConfig()
	config.Units = []string{"sack"}
	c := NewWithConfig(config)

	if !c.LooksLikeUnit("Sack") {
		t.Error("custom unit should match")
	}
	if c.LooksLikeUnit("kg") {
		t.Error("default vocabulary should be replaced, not merged")
	}
}
