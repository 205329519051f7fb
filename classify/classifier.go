// Package classify provides pure, schema-free judgements about whether a
// text token looks like a product name, a price, or a unit of measure. It is
// the leaf dependency of structure analysis, record extraction and quality
// scoring.
//
// The classifiers are heuristic: a price list carries no ground truth, so
// each judgement is a cheap statistical signal that higher stages combine
// with positional evidence. In particular LooksLikePrice must not be used
// in isolation to label a column (a column of integer IDs passes it), which
// is why the structure analyzer pairs it with per-column sampling.
package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pricelens/pricelens/numeric"
)

// Config holds the classifier vocabularies and thresholds. Vocabularies are
// immutable after construction so classifiers with different locales can run
// concurrently.
type Config struct {
	// MinPrice is the lower bound of the plausible price range.
	// Default: 10
	MinPrice float64

	// MaxPrice is the upper bound of the plausible price range.
	// Default: 50000000
	MaxPrice float64

	// MinProductLen and MaxProductLen bound product-name length in runes.
	// Defaults: 3 and 200
	MinProductLen int
	MaxProductLen int

	// MinAlphaRun is the minimum length of a consecutive alphabetic run a
	// product name must contain.
	// Default: 3
	MinAlphaRun int

	// Denylist contains structural tokens that are never product names
	// (column labels, totals, localized equivalents). Matched exactly after
	// normalization.
	Denylist []string

	// Units is the closed unit vocabulary. Membership is exact after
	// normalization; units are low-cardinality so fuzzy matching would buy
	// nothing and cost false positives.
	Units []string

	// NullLiterals are serialized empty values that classify as nothing.
	NullLiterals []string
}

// DefaultConfig returns the multilingual default vocabulary covering the
// English, Russian and Indonesian supplier files the engine was tuned on.
func DefaultConfig() Config {
	return Config{
		MinPrice:      10,
		MaxPrice:      50_000_000,
		MinProductLen: 3,
		MaxProductLen: 200,
		MinAlphaRun:   3,
		Denylist: []string{
			"unit", "price", "no", "description", "total", "sum", "header",
			"qty", "amount", "discount",
			"итого", "сумма", "цена", "количество", "наименование", "артикул",
			"jumlah", "harga",
		},
		Units: []string{
			"kg", "g", "gr", "mg", "ml", "l", "ltr",
			"pcs", "pc", "pack", "box", "can", "btl", "ctn", "dus",
			"ikat", "gln", "sisir", "papan",
			"gram", "liter", "piece", "dozen", "bottle",
			"кг", "г", "гр", "мл", "л", "шт", "уп", "кор", "бут",
		},
		NullLiterals: []string{"", "nan", "none", "null", "undefined", "n/a", "-"},
	}
}

// Classifier judges token shape against a fixed vocabulary set.
type Classifier struct {
	config   Config
	norm     *numeric.Normalizer
	denylist map[string]struct{}
	units    map[string]struct{}
	nulls    map[string]struct{}
}

// New creates a classifier with default configuration.
func New() *Classifier {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a classifier with custom vocabularies. The config
// slices are copied into lookup sets at construction.
func NewWithConfig(config Config) *Classifier {
	c := &Classifier{
		config:   config,
		norm:     numeric.New(),
		denylist: make(map[string]struct{}, len(config.Denylist)),
		units:    make(map[string]struct{}, len(config.Units)),
		nulls:    make(map[string]struct{}, len(config.NullLiterals)),
	}
	for _, w := range config.Denylist {
		c.denylist[Normalize(w)] = struct{}{}
	}
	for _, u := range config.Units {
		c.units[Normalize(u)] = struct{}{}
	}
	for _, s := range config.NullLiterals {
		c.nulls[Normalize(s)] = struct{}{}
	}
	return c
}

// Normalize folds a token for vocabulary comparison: NFKC normalization,
// lower case, trimmed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// IsNull returns true for serialized empty values ("", "nan", "none", ...).
func (c *Classifier) IsNull(s string) bool {
	_, ok := c.nulls[Normalize(s)]
	return ok
}

// LooksLikeProduct reports whether the token plausibly names a product:
// bounded length, not purely numeric, not a structural keyword or a bare
// unit token, and containing at least one alphabetic run of MinAlphaRun
// letters. Product is the first judgement in the mutually-exclusive
// classification chain, so the vocabularies it excludes are exactly what
// keeps unit columns and label rows from reading as products.
func (c *Classifier) LooksLikeProduct(s string) bool {
	s = strings.TrimSpace(s)
	if c.IsNull(s) {
		return false
	}

	runes := []rune(s)
	if len(runes) < c.config.MinProductLen || len(runes) > c.config.MaxProductLen {
		return false
	}

	if isPureNumeric(s) {
		return false
	}

	normalized := Normalize(s)
	if _, denied := c.denylist[normalized]; denied {
		return false
	}
	if _, unit := c.units[normalized]; unit {
		return false
	}

	return longestAlphaRun(s) >= c.config.MinAlphaRun
}

// ProductQuality scores how product-like a token is beyond the boolean test,
// in [0,1]. Multi-word names and moderate length are rewarded; the repetition
// penalty needs column context and lives in the structure analyzer.
func (c *Classifier) ProductQuality(s string) float64 {
	if !c.LooksLikeProduct(s) {
		return 0
	}

	score := 0.5

	words := strings.Fields(s)
	if len(words) >= 2 {
		score += 0.3
	}
	if n := len([]rune(s)); n >= 10 && n <= 100 {
		score += 0.2
	}

	if score > 1 {
		score = 1
	}
	return score
}

// LooksLikePrice reports whether the token reads as a plausible monetary
// amount after currency stripping. Pure integers pass; combine with column
// evidence before trusting the signal.
func (c *Classifier) LooksLikePrice(s string) bool {
	if c.IsNull(s) {
		return false
	}
	v, err := c.norm.Parse(s)
	if err != nil {
		return false
	}
	return v >= c.config.MinPrice && v <= c.config.MaxPrice
}

// Price parses the token as a price, returning numeric.ErrNotANumber when it
// falls outside the plausible price range.
func (c *Classifier) Price(s string) (float64, error) {
	if c.IsNull(s) {
		return 0, numeric.ErrNotANumber
	}
	v, err := c.norm.Parse(s)
	if err != nil {
		return 0, err
	}
	if v < c.config.MinPrice || v > c.config.MaxPrice {
		return 0, numeric.ErrNotANumber
	}
	return v, nil
}

// LooksLikeUnit reports exact membership in the unit vocabulary.
func (c *Classifier) LooksLikeUnit(s string) bool {
	if c.IsNull(s) {
		return false
	}
	_, ok := c.units[Normalize(s)]
	return ok
}

// isPureNumeric reports whether the token is digits once separators and
// whitespace are removed.
func isPureNumeric(s string) bool {
	seen := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seen = true
		case r == '.' || r == ',' || r == ' ':
			// separator
		default:
			return false
		}
	}
	return seen
}

// longestAlphaRun returns the length of the longest consecutive run of
// letters in the token.
func longestAlphaRun(s string) int {
	longest, current := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
