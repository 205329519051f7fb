// Package structure infers the layout of a price-list grid: where the header
// row is, which columns carry which semantic roles, and how the product/price
// data is arranged. It works from statistical signals alone; no schema ever
// describes the input.
package structure

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/pricelens/pricelens/classify"
	"github.com/pricelens/pricelens/grid"
)

// StructureType classifies how product/price data is laid out.
type StructureType int

const (
	// StructureUnknown indicates no usable layout (typically an empty grid).
	StructureUnknown StructureType = iota
	// StructureTabular is the common case: one product column and at least
	// one price column.
	StructureTabular
	// StructureMultiColumn indicates several product columns, each paired
	// with prices side by side.
	StructureMultiColumn
	// StructureMixedSparse indicates no reliable column roles; rows are
	// scanned cell by cell instead.
	StructureMixedSparse
)

// String returns the string representation of the structure type.
func (s StructureType) String() string {
	switch s {
	case StructureTabular:
		return "tabular"
	case StructureMultiColumn:
		return "multi-column"
	case StructureMixedSparse:
		return "mixed-sparse"
	default:
		return "unknown"
	}
}

// ColumnMapping assigns a role to one column with supporting evidence.
type ColumnMapping struct {
	// Column is the 0-based column index; always < the grid's ColCount.
	Column int

	// Role is the assigned semantic role.
	Role ColumnRole

	// Confidence in [0,1] for this mapping.
	Confidence float64

	// Evidence identifies what produced the mapping.
	Evidence Evidence

	// Quality is a secondary metric for product columns rewarding long,
	// multi-word, low-repetition values. Zero for other roles.
	Quality float64
}

// Classification is the analyzer's immutable result, consumed by the record
// extractor.
type Classification struct {
	// Type is the detected structure type.
	Type StructureType

	// HeaderRow is the detected header row index, or -1 if none was found.
	HeaderRow int

	// DataStartRow is the first row of data (0 or HeaderRow+1).
	DataStartRow int

	// Mappings lists role assignments for mapped columns, in column order.
	Mappings []ColumnMapping

	// Confidence in [0,1] for the classification as a whole.
	Confidence float64
}

// RoleColumns returns the columns mapped to the given role, in column order.
func (c Classification) RoleColumns(role ColumnRole) []int {
	var cols []int
	for _, m := range c.Mappings {
		if m.Role == role {
			cols = append(cols, m.Column)
		}
	}
	return cols
}

// Config holds the analyzer's tunable parameters.
type Config struct {
	// MaxHeaderScanRows is how many leading rows are scanned for a header.
	// Default: 10
	MaxHeaderScanRows int

	// MinHeaderRoles is how many distinct roles a row must match to qualify
	// as a header.
	// Default: 2
	MinHeaderRoles int

	// SampleSize is the number of non-empty cells sampled per column for
	// the content heuristic.
	// Default: 20
	SampleSize int

	// ProductThreshold, PriceThreshold and UnitThreshold are the minimum
	// sample fractions for content-based role assignment.
	// Defaults: 0.6, 0.7, 0.5
	ProductThreshold float64
	PriceThreshold   float64
	UnitThreshold    float64

	// FuzzyMaxDistance is the maximum Levenshtein distance for a fuzzy
	// header keyword match. Keywords shorter than 4 runes never match
	// fuzzily.
	// Default: 1
	FuzzyMaxDistance int

	// KeywordConfidence and FuzzyConfidence are the mapping confidences
	// assigned by the two header passes.
	// Defaults: 0.9 and 0.75
	KeywordConfidence float64
	FuzzyConfidence   float64

	// RoleWeight, FillWeight and AgreementWeight combine into the overall
	// classification confidence.
	// Defaults: 0.4, 0.3, 0.3
	RoleWeight      float64
	FillWeight      float64
	AgreementWeight float64

	// Keywords is the per-role header dictionary.
	Keywords map[ColumnRole][]string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHeaderScanRows: 10,
		MinHeaderRoles:    2,
		SampleSize:        20,
		ProductThreshold:  0.6,
		PriceThreshold:    0.7,
		UnitThreshold:     0.5,
		FuzzyMaxDistance:  1,
		KeywordConfidence: 0.9,
		FuzzyConfidence:   0.75,
		RoleWeight:        0.4,
		FillWeight:        0.3,
		AgreementWeight:   0.3,
		Keywords:          DefaultKeywords(),
	}
}

// Analyzer infers grid structure.
type Analyzer struct {
	config     Config
	classifier *classify.Classifier
}

// New creates an analyzer with default configuration and vocabulary.
func New() *Analyzer {
	return NewWithConfig(DefaultConfig(), classify.New())
}

// NewWithConfig creates an analyzer with custom configuration and classifier.
func NewWithConfig(config Config, classifier *classify.Classifier) *Analyzer {
	if config.Keywords == nil {
		config.Keywords = DefaultKeywords()
	}
	return &Analyzer{config: config, classifier: classifier}
}

// Analyze classifies the structure of a grid. An empty grid yields
// StructureUnknown with zero confidence; Analyze never fails.
func (a *Analyzer) Analyze(g *grid.Grid) Classification {
	if g.IsEmpty() {
		return Classification{Type: StructureUnknown, HeaderRow: -1}
	}

	headerRow := a.findHeaderRow(g)
	dataStart := 0
	if headerRow >= 0 {
		dataStart = headerRow + 1
	}

	mappings, agreement := a.mapColumns(g, headerRow, dataStart)

	classification := Classification{
		HeaderRow:    headerRow,
		DataStartRow: dataStart,
		Mappings:     mappings,
	}
	classification.Type = a.structureType(mappings)
	classification.Confidence = a.confidence(g, mappings, agreement)

	return classification
}

// findHeaderRow scans the leading rows for the one matching the most role
// keywords. A row qualifies only if it matches at least MinHeaderRoles
// distinct roles. Returns -1 when no row qualifies.
func (a *Analyzer) findHeaderRow(g *grid.Grid) int {
	limit := g.RowCount()
	if limit > a.config.MaxHeaderScanRows {
		limit = a.config.MaxHeaderScanRows
	}

	bestRow, bestRoles := -1, 0
	for row := 0; row < limit; row++ {
		roles := make(map[ColumnRole]struct{})
		for col := 0; col < g.ColCount(); col++ {
			cell := g.Cell(row, col)
			if cell.IsEmpty() {
				continue
			}
			if role, _ := a.matchHeaderKeyword(cell.String()); role != RoleUnknown {
				roles[role] = struct{}{}
			}
		}
		if len(roles) >= a.config.MinHeaderRoles && len(roles) > bestRoles {
			bestRow, bestRoles = row, len(roles)
		}
	}
	return bestRow
}

// matchHeaderKeyword matches a header cell against the role dictionary:
// exact substring first, then whole-token fuzzy matching.
func (a *Analyzer) matchHeaderKeyword(text string) (ColumnRole, Evidence) {
	normalized := classify.Normalize(text)
	if normalized == "" {
		return RoleUnknown, EvidenceNone
	}

	for _, role := range []ColumnRole{RoleProduct, RolePrice, RoleUnit, RoleCategory, RoleBrand, RoleSize} {
		for _, kw := range a.config.Keywords[role] {
			if strings.Contains(normalized, kw) {
				return role, EvidenceKeyword
			}
		}
	}

	// Fuzzy pass: tolerate OCR noise and typos in header tokens.
	tokens := strings.Fields(normalized)
	for _, role := range []ColumnRole{RoleProduct, RolePrice, RoleUnit, RoleCategory, RoleBrand, RoleSize} {
		for _, kw := range a.config.Keywords[role] {
			if len([]rune(kw)) < 4 {
				continue
			}
			for _, tok := range tokens {
				if levenshtein.Distance(tok, kw, nil) <= a.config.FuzzyMaxDistance {
					return role, EvidenceFuzzyKeyword
				}
			}
		}
	}

	return RoleUnknown, EvidenceNone
}

// columnStats holds content-heuristic sample fractions for one column.
type columnStats struct {
	sampled  int
	product  float64
	price    float64
	unit     float64
	quality  float64
	distinct float64 // distinct values / sampled, repetition proxy
}

// mapColumns runs the two assignment passes and returns the mappings plus
// the header/content agreement ratio used for confidence scoring.
func (a *Analyzer) mapColumns(g *grid.Grid, headerRow, dataStart int) ([]ColumnMapping, float64) {
	var mappings []ColumnMapping

	agreeChecked, agreeHit := 0, 0

	for col := 0; col < g.ColCount(); col++ {
		stats := a.sampleColumn(g, col, dataStart)
		contentRole, contentConf := a.contentRole(stats)

		var mapping ColumnMapping
		mapped := false

		if headerRow >= 0 {
			cell := g.Cell(headerRow, col)
			if !cell.IsEmpty() {
				if role, evidence := a.matchHeaderKeyword(cell.String()); role != RoleUnknown {
					conf := a.config.KeywordConfidence
					if evidence == EvidenceFuzzyKeyword {
						conf = a.config.FuzzyConfidence
					}
					mapping = ColumnMapping{Column: col, Role: role, Confidence: conf, Evidence: evidence}
					mapped = true

					// The content pass always runs; when both passes assign
					// a role to the same column their agreement feeds the
					// overall confidence.
					if contentRole != RoleUnknown {
						agreeChecked++
						if contentRole == role {
							agreeHit++
						}
					}
				}
			}
		}

		if !mapped && contentRole != RoleUnknown {
			mapping = ColumnMapping{Column: col, Role: contentRole, Confidence: contentConf, Evidence: EvidenceContent}
			mapped = true
		}

		if !mapped {
			continue
		}

		if mapping.Role == RoleProduct {
			mapping.Quality = productColumnQuality(stats)
		}
		mappings = append(mappings, mapping)
	}

	agreement := 1.0
	if agreeChecked > 0 {
		agreement = float64(agreeHit) / float64(agreeChecked)
	}
	return mappings, agreement
}

// sampleColumn computes classifier fractions over up to SampleSize non-empty
// cells, starting below the header so header text never skews the sample.
func (a *Analyzer) sampleColumn(g *grid.Grid, col, dataStart int) columnStats {
	var stats columnStats
	seen := make(map[string]struct{})

	productHits, priceHits, unitHits := 0, 0, 0
	qualitySum := 0.0

	for row := dataStart; row < g.RowCount() && stats.sampled < a.config.SampleSize; row++ {
		cell := g.Cell(row, col)
		if cell.IsEmpty() {
			continue
		}
		text := cell.String()
		if a.classifier.IsNull(text) {
			continue
		}
		stats.sampled++
		seen[classify.Normalize(text)] = struct{}{}

		// Mirror the mutually-exclusive judgement order used everywhere
		// else: product first, so a name with an embedded plausible
		// number ("Widget Model 15000") never counts as a price. Typed
		// numbers still go through the plausible-range gate, so
		// serial-number columns do not read as prices either.
		switch {
		case a.classifier.LooksLikeProduct(text):
			productHits++
			qualitySum += a.classifier.ProductQuality(text)
		case a.classifier.LooksLikePrice(text):
			priceHits++
		case a.classifier.LooksLikeUnit(text):
			unitHits++
		}
	}

	if stats.sampled == 0 {
		return stats
	}

	n := float64(stats.sampled)
	stats.product = float64(productHits) / n
	stats.price = float64(priceHits) / n
	stats.unit = float64(unitHits) / n
	stats.distinct = float64(len(seen)) / n
	if productHits > 0 {
		stats.quality = qualitySum / float64(productHits)
	}
	return stats
}

// contentRole assigns a role from sample fractions. Product is checked
// first, then price, then unit; a column crossing no threshold stays
// unknown.
func (a *Analyzer) contentRole(stats columnStats) (ColumnRole, float64) {
	if stats.sampled == 0 {
		return RoleUnknown, 0
	}
	switch {
	case stats.product > a.config.ProductThreshold:
		return RoleProduct, stats.product
	case stats.price > a.config.PriceThreshold:
		return RolePrice, stats.price
	case stats.unit > a.config.UnitThreshold:
		return RoleUnit, stats.unit
	default:
		return RoleUnknown, 0
	}
}

// productColumnQuality combines average value quality with a repetition
// penalty: a column of short, frequently repeating tokens is more likely a
// unit or brand column than products.
func productColumnQuality(stats columnStats) float64 {
	q := stats.quality*0.7 + stats.distinct*0.3
	if q > 1 {
		q = 1
	}
	return q
}

// structureType decides the layout class from the mapped roles.
func (a *Analyzer) structureType(mappings []ColumnMapping) StructureType {
	products, prices := 0, 0
	for _, m := range mappings {
		switch m.Role {
		case RoleProduct:
			products++
		case RolePrice:
			prices++
		}
	}

	switch {
	case products > 1:
		return StructureMultiColumn
	case products == 1 && prices >= 1:
		return StructureTabular
	default:
		return StructureMixedSparse
	}
}

// confidence combines role resolution, grid fill and header/content
// agreement into a single score.
func (a *Analyzer) confidence(g *grid.Grid, mappings []ColumnMapping, agreement float64) float64 {
	resolved := float64(len(mappings)) / float64(g.ColCount())
	fill := g.FillRatio()

	c := resolved*a.config.RoleWeight + fill*a.config.FillWeight + agreement*a.config.AgreementWeight
	if c > 1 {
		c = 1
	}
	return c
}
