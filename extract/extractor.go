// Package extract turns a classified grid into product records. Extraction
// strategy follows the detected structure type; every strategy enforces the
// same boundary rule: a record is emitted only with a valid product name and
// a positive price.
//
// Per-row failures are silent; they reduce yield and show up only in the
// aggregate Stats. Only whole-grid failures (no usable columns, empty grid)
// surface as errors.
package extract

import (
	"errors"

	"github.com/pricelens/pricelens/classify"
	"github.com/pricelens/pricelens/grid"
	"github.com/pricelens/pricelens/structure"
)

// Whole-grid failures. Per spec of the pipeline these accompany an empty
// record slice; callers branch on them rather than on panics.
var (
	// ErrEmptyGrid is returned for a grid with no rows or columns.
	ErrEmptyGrid = errors.New("empty grid")
	// ErrNoProductColumn is returned when a columnar strategy has no product
	// column to read.
	ErrNoProductColumn = errors.New("no product column")
	// ErrNoPriceColumn is returned when a columnar strategy has no price
	// column to read.
	ErrNoPriceColumn = errors.New("no price column")
)

// Record is one extracted product entry. Records are immutable after
// creation; ownership passes to the caller. Optional fields are empty
// strings when absent. Price is always positive: rows without a valid
// product/price pair are never emitted.
type Record struct {
	Product    string  `json:"product"`
	Price      float64 `json:"price"`
	Unit       string  `json:"unit,omitempty"`
	Category   string  `json:"category,omitempty"`
	Brand      string  `json:"brand,omitempty"`
	Size       string  `json:"size,omitempty"`
	SourceRow  int     `json:"source_row"`
	Confidence float64 `json:"confidence"`
}

// Stats aggregates one extraction pass for observability.
type Stats struct {
	TotalRows     int                     `json:"total_rows"`
	Extracted     int                     `json:"extracted_count"`
	Skipped       int                     `json:"skipped_count"`
	StructureType structure.StructureType `json:"-"`
	Structure     string                  `json:"structure_type"`
	TableID       string                  `json:"used_table_id,omitempty"`
	SuccessRate   float64                 `json:"success_rate"`
}

// Config holds the extractor's tunable parameters.
type Config struct {
	// MaxRecords caps the number of records extracted from one grid.
	// Default: 1000
	MaxRecords int

	// TabularConfidence, MultiColumnConfidence and SparseConfidence are the
	// per-record confidences assigned by each strategy, reflecting the
	// strength of the structural evidence behind it.
	// Defaults: 0.9, 0.8, 0.7
	TabularConfidence     float64
	MultiColumnConfidence float64
	SparseConfidence      float64

	// UnitAliases canonicalizes localized unit spellings on extracted
	// records ("шт" -> "pcs"). Units with no alias pass through unchanged.
	UnitAliases map[string]string
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxRecords:            1000,
		TabularConfidence:     0.9,
		MultiColumnConfidence: 0.8,
		SparseConfidence:      0.7,
		UnitAliases: map[string]string{
			"шт": "pcs", "штука": "pcs", "штук": "pcs", "piece": "pcs", "pc": "pcs",
			"кг": "kg", "килограмм": "kg",
			"г": "g", "гр": "g", "gram": "g",
			"л": "l", "литр": "l", "liter": "l", "ltr": "l",
			"мл": "ml",
			"кор": "box", "коробка": "box",
			"уп": "pack", "упаковка": "pack", "пачка": "pack",
			"бут": "btl", "bottle": "btl",
		},
	}
}

// Extractor produces records from classified grids.
type Extractor struct {
	config     Config
	classifier *classify.Classifier
}

// New creates an extractor with default configuration.
func New() *Extractor {
	return NewWithConfig(DefaultConfig(), classify.New())
}

// NewWithConfig creates an extractor with custom configuration and
// classifier.
func NewWithConfig(config Config, classifier *classify.Classifier) *Extractor {
	return &Extractor{config: config, classifier: classifier}
}

// Extract produces records from a grid using the strategy selected by the
// classification's structure type. The returned error is non-nil only for
// whole-grid failures; it always accompanies a complete Stats value.
func (e *Extractor) Extract(g *grid.Grid, c structure.Classification) ([]Record, Stats, error) {
	stats := Stats{
		StructureType: c.Type,
		Structure:     c.Type.String(),
	}

	if g.IsEmpty() {
		return nil, stats, ErrEmptyGrid
	}
	stats.TotalRows = g.RowCount() - c.DataStartRow

	var records []Record
	var err error

	switch c.Type {
	case structure.StructureTabular:
		records, err = e.extractTabular(g, c)
	case structure.StructureMultiColumn:
		records, err = e.extractMultiColumn(g, c)
	default:
		records = e.extractSparse(g, c)
	}

	stats.Extracted = len(records)
	stats.Skipped = stats.TotalRows - rowsRepresented(records)
	if stats.TotalRows > 0 {
		stats.SuccessRate = float64(rowsRepresented(records)) / float64(stats.TotalRows)
	}
	return records, stats, err
}

// extractTabular reads the single product column and the first price column
// row by row.
func (e *Extractor) extractTabular(g *grid.Grid, c structure.Classification) ([]Record, error) {
	productCols := c.RoleColumns(structure.RoleProduct)
	priceCols := c.RoleColumns(structure.RolePrice)
	if len(productCols) == 0 {
		return nil, ErrNoProductColumn
	}
	if len(priceCols) == 0 {
		return nil, ErrNoPriceColumn
	}

	productCol, priceCol := productCols[0], priceCols[0]

	var records []Record
	for row := c.DataStartRow; row < g.RowCount(); row++ {
		if len(records) >= e.config.MaxRecords {
			break
		}

		name, ok := e.productName(g.Cell(row, productCol))
		if !ok {
			continue
		}
		price, err := e.classifier.Price(g.Cell(row, priceCol).String())
		if err != nil {
			continue
		}

		rec := Record{
			Product:    name,
			Price:      price,
			SourceRow:  row,
			Confidence: e.config.TabularConfidence,
		}
		e.fillAuxiliary(&rec, g, c, row)
		records = append(records, rec)
	}
	return records, nil
}

// extractMultiColumn forms the cross product of every product column with
// every price column in the same row, for layouts that repeat product/price
// pairs side by side.
func (e *Extractor) extractMultiColumn(g *grid.Grid, c structure.Classification) ([]Record, error) {
	productCols := c.RoleColumns(structure.RoleProduct)
	priceCols := c.RoleColumns(structure.RolePrice)
	if len(productCols) == 0 {
		return nil, ErrNoProductColumn
	}
	if len(priceCols) == 0 {
		return nil, ErrNoPriceColumn
	}

	var records []Record
	for row := c.DataStartRow; row < g.RowCount(); row++ {
		for _, pc := range productCols {
			name, ok := e.productName(g.Cell(row, pc))
			if !ok {
				continue
			}
			for _, prc := range priceCols {
				if len(records) >= e.config.MaxRecords {
					return records, nil
				}
				price, err := e.classifier.Price(g.Cell(row, prc).String())
				if err != nil {
					continue
				}
				rec := Record{
					Product:    name,
					Price:      price,
					SourceRow:  row,
					Confidence: e.config.MultiColumnConfidence,
				}
				e.fillAuxiliary(&rec, g, c, row)
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// extractSparse has no column roles to rely on: it scans every cell in a
// row, pairing the first product-like cell with the first price-like cell.
func (e *Extractor) extractSparse(g *grid.Grid, c structure.Classification) []Record {
	var records []Record
	for row := c.DataStartRow; row < g.RowCount(); row++ {
		if len(records) >= e.config.MaxRecords {
			break
		}

		var name, unit string
		price := 0.0
		havePrice := false

		for col := 0; col < g.ColCount(); col++ {
			cell := g.Cell(row, col)
			if cell.IsEmpty() {
				continue
			}
			text := cell.String()

			// Each cell gets exactly one judgement, product first, so
			// the digits inside a product name never become the row's
			// price even when the name cell is scanned before the price
			// cell.
			switch {
			case e.classifier.LooksLikeProduct(text):
				if name == "" {
					name = text
				}
			case e.classifier.LooksLikePrice(text):
				if !havePrice {
					if v, err := e.classifier.Price(text); err == nil {
						price, havePrice = v, true
					}
				}
			case e.classifier.LooksLikeUnit(text):
				if unit == "" {
					unit = e.canonicalUnit(text)
				}
			}
		}

		if name == "" || !havePrice {
			continue
		}
		records = append(records, Record{
			Product:    name,
			Price:      price,
			Unit:       unit,
			SourceRow:  row,
			Confidence: e.config.SparseConfidence,
		})
	}
	return records
}

// productName validates and returns the product text of a cell.
func (e *Extractor) productName(c grid.Cell) (string, bool) {
	if c.IsEmpty() {
		return "", false
	}
	text := c.String()
	if !e.classifier.LooksLikeProduct(text) {
		return "", false
	}
	return text, true
}

// fillAuxiliary reads unit/category/brand/size from mapped columns. The unit
// falls back to any unit-like cell in the row when no unit column exists.
func (e *Extractor) fillAuxiliary(rec *Record, g *grid.Grid, c structure.Classification, row int) {
	for _, m := range c.Mappings {
		cell := g.Cell(row, m.Column)
		if cell.IsEmpty() {
			continue
		}
		text := cell.String()
		if e.classifier.IsNull(text) {
			continue
		}
		switch m.Role {
		case structure.RoleUnit:
			if rec.Unit == "" {
				rec.Unit = e.canonicalUnit(text)
			}
		case structure.RoleCategory:
			if rec.Category == "" {
				rec.Category = text
			}
		case structure.RoleBrand:
			if rec.Brand == "" {
				rec.Brand = text
			}
		case structure.RoleSize:
			if rec.Size == "" {
				rec.Size = text
			}
		}
	}

	if rec.Unit == "" {
		for col := 0; col < g.ColCount(); col++ {
			text := g.Cell(row, col).String()
			if text != "" && e.classifier.LooksLikeUnit(text) {
				rec.Unit = e.canonicalUnit(text)
				break
			}
		}
	}
}

// canonicalUnit maps localized unit spellings to canonical ones.
func (e *Extractor) canonicalUnit(s string) string {
	normalized := classify.Normalize(s)
	if alias, ok := e.config.UnitAliases[normalized]; ok {
		return alias
	}
	return normalized
}

// rowsRepresented counts distinct source rows among the records.
func rowsRepresented(records []Record) int {
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		seen[r.SourceRow] = struct{}{}
	}
	return len(seen)
}
