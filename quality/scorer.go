// Package quality scores how promising a grid is as a source of price-list
// records. The score is cheap, a fill ratio plus classifier densities over a
// bounded sample, so it can rank candidate tables from competing extraction
// methods, and rank worksheets inside a workbook, before the more expensive
// structure analysis runs on the winner only.
package quality

import (
	"github.com/pricelens/pricelens/classify"
	"github.com/pricelens/pricelens/grid"
)

// Config holds the scorer's weights and sample bounds.
type Config struct {
	// FillWeight, ProductWeight and PriceWeight combine the three density
	// components into the final score.
	// Defaults: 0.3, 0.4, 0.3
	FillWeight    float64
	ProductWeight float64
	PriceWeight   float64

	// SampleRows bounds how many leading rows feed the product/price
	// densities.
	// Default: 10
	SampleRows int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		FillWeight:    0.3,
		ProductWeight: 0.4,
		PriceWeight:   0.3,
		SampleRows:    10,
	}
}

// Scorer computes grid quality scores.
type Scorer struct {
	config     Config
	classifier *classify.Classifier
}

// New creates a scorer with default configuration.
func New() *Scorer {
	return NewWithConfig(DefaultConfig(), classify.New())
}

// NewWithConfig creates a scorer with custom configuration and classifier.
func NewWithConfig(config Config, classifier *classify.Classifier) *Scorer {
	return &Scorer{config: config, classifier: classifier}
}

// Score rates a grid in [0,1]: weighted sum of the grid-wide fill ratio and
// the densities of product-like and price-like cells in the leading rows.
// An empty grid scores 0.
func (s *Scorer) Score(g *grid.Grid) float64 {
	if g.IsEmpty() {
		return 0
	}

	rows := g.RowCount()
	if rows > s.config.SampleRows {
		rows = s.config.SampleRows
	}

	sampleCells := rows * g.ColCount()
	productHits, priceHits := 0, 0

	for row := 0; row < rows; row++ {
		for col := 0; col < g.ColCount(); col++ {
			cell := g.Cell(row, col)
			if cell.IsEmpty() {
				continue
			}
			text := cell.String()
			// Product first, matching the judgement order of the other
			// stages: a name with embedded digits counts as a product.
			switch {
			case s.classifier.LooksLikeProduct(text):
				productHits++
			case s.classifier.LooksLikePrice(text):
				priceHits++
			}
		}
	}

	score := g.FillRatio() * s.config.FillWeight
	if sampleCells > 0 {
		score += float64(productHits) / float64(sampleCells) * s.config.ProductWeight
		score += float64(priceHits) / float64(sampleCells) * s.config.PriceWeight
	}

	if score > 1 {
		score = 1
	}
	return score
}
