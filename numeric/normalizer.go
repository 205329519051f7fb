// Package numeric parses ambiguous numeric and currency literals from price
// lists into canonical float values. Supplier files mix thousands and decimal
// separator conventions ("1,234.56" vs "1.234,56" vs "1 234,56"), often inside
// currency-decorated strings; the Normalizer resolves the separators
// statistically rather than assuming a locale.
package numeric

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/pricelens/pricelens/grid"
)

// ErrNotANumber is returned when a literal cannot be read as a plausible
// numeric value. It is a normal, expected outcome; callers decide whether a
// missing number disqualifies the surrounding row.
var ErrNotANumber = errors.New("not a number")

// Config holds the normalizer's tunable parameters.
type Config struct {
	// MinValue is the smallest value accepted as plausible.
	// Default: 0.01
	MinValue float64

	// MaxValue is the largest value accepted as plausible. Values outside
	// [MinValue, MaxValue] are rejected, which filters out serialized IDs,
	// dates and row numbers.
	// Default: 50000000
	MaxValue float64

	// CurrencyTokens are symbols and words stripped before parsing, matched
	// case-insensitively. Longer tokens are stripped first.
	CurrencyTokens []string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinValue: 0.01,
		MaxValue: 50_000_000,
		CurrencyTokens: []string{
			"$", "€", "₽", "£",
			"usd", "eur", "idr", "rub",
			"rp", "руб", "рублей", "р.",
		},
	}
}

// Normalizer converts raw numeric literals into canonical float64 values.
type Normalizer struct {
	config Config

	// tokens are the currency tokens lower-cased and ordered longest
	// first, so that "рублей" is stripped before its prefix "руб".
	tokens []string
}

// New creates a normalizer with default configuration.
func New() *Normalizer {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a normalizer with custom configuration.
func NewWithConfig(config Config) *Normalizer {
	tokens := make([]string, len(config.CurrencyTokens))
	for i, tok := range config.CurrencyTokens {
		tokens[i] = strings.ToLower(tok)
	}
	sort.SliceStable(tokens, func(i, j int) bool { return len(tokens[i]) > len(tokens[j]) })
	return &Normalizer{config: config, tokens: tokens}
}

// ParseCell reads a numeric value from a typed cell. Number cells are
// range-checked directly; text cells go through Parse.
func (n *Normalizer) ParseCell(c grid.Cell) (float64, error) {
	switch c.Kind {
	case grid.KindNumber:
		if !n.inRange(c.Number) {
			return 0, ErrNotANumber
		}
		return c.Number, nil
	case grid.KindText, grid.KindUnparsed:
		return n.Parse(c.Text)
	default:
		return 0, ErrNotANumber
	}
}

// Parse converts a raw literal into a canonical value.
//
// The steps run in order, first success wins:
//
//  1. A literal that already parses as a machine number is accepted if it
//     lies in the plausible range and rejected otherwise. Negative values
//     fail the range check here and never reach the stripping steps.
//  2. Currency symbols and words are stripped.
//  3. Everything except digits, '.' and ',' is discarded.
//  4. Separators are disambiguated: with both '.' and ',' present the
//     rightmost acts as the decimal separator; a single trailing group of at
//     most two digits after the only comma (or after the last of several
//     dots) is treated as a decimal fraction, otherwise the separators are
//     thousands markers and are dropped.
//  5. The canonical string is parsed and range-checked.
func (n *Normalizer) Parse(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrNotANumber
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if !n.inRange(v) {
			return 0, ErrNotANumber
		}
		return v, nil
	}

	s = n.stripCurrency(s)

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" {
		return 0, ErrNotANumber
	}

	s = disambiguateSeparators(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !n.inRange(v) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// Render formats a value in the canonical form accepted by Parse, so that
// Parse(Render(v)) == v for any value Parse can produce.
func (n *Normalizer) Render(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (n *Normalizer) inRange(v float64) bool {
	return v >= n.config.MinValue && v <= n.config.MaxValue
}

// stripCurrency removes currency tokens case-insensitively. The string is
// lower-cased once and the lowered form is stripped and returned: digits
// and separators are case-invariant, and case mapping can change a rune's
// byte length, so offsets found in a lowered copy must never be applied to
// the original bytes.
func (n *Normalizer) stripCurrency(s string) string {
	s = strings.ToLower(s)
	for _, tok := range n.tokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return s
}

// disambiguateSeparators reduces a digits-and-separators string to a
// canonical decimal literal.
func disambiguateSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal point.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}

	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Single comma with a short suffix: decimal separator.
			s = parts[0] + "." + parts[1]
		} else {
			// Thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		}

	case hasDot && strings.Count(s, ".") > 1:
		// Multiple dots, no comma. If the last group is short it is kept as
		// the decimal fraction and the remaining dots collapse; otherwise
		// every dot is a thousands marker. "1.23.45" intentionally becomes
		// "123.45": the final short group wins even when the earlier groups
		// are not well-formed thousands triples.
		parts := strings.Split(s, ".")
		last := parts[len(parts)-1]
		if len(last) <= 2 {
			s = strings.Join(parts[:len(parts)-1], "") + "." + last
		} else {
			s = strings.Join(parts, "")
		}
	}

	// Can still have multiple decimal points after the comma branch when the
	// input was malformed; let ParseFloat reject those.
	return s
}
