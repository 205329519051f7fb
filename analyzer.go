package pricelens

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pricelens/pricelens/cascade"
	"github.com/pricelens/pricelens/extract"
	"github.com/pricelens/pricelens/grid"
	"github.com/pricelens/pricelens/htmlgrid"
	"github.com/pricelens/pricelens/ocr"
	"github.com/pricelens/pricelens/pdftable"
	"github.com/pricelens/pricelens/quality"
	"github.com/pricelens/pricelens/sheet"
	"github.com/pricelens/pricelens/structure"
)

// ErrUnsupportedFormat is returned when the input file's extension maps
// to no known acquisition path.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Result holds one complete extraction pass.
type Result struct {
	// Records are the extracted product/price rows, in source order.
	Records []extract.Record

	// Stats summarizes the pass: row counts, structure type, success
	// rate, and which candidate table was used.
	Stats extract.Stats

	// Classification is the structural analysis the extraction followed.
	Classification structure.Classification
}

// Analyzer provides a fluent interface for extracting price-list records
// from a file or an already-built grid. Each configuration method returns
// a new Analyzer instance, making it safe for concurrent use and allowing
// method chaining.
type Analyzer struct {
	filename string
	source   *grid.Grid

	options options
}

// Open prepares an Analyzer for the file at filename. The format is
// chosen by extension when a terminal operation runs; nothing is read
// until then.
//
// Example:
//
//	result, err := pricelens.Open("supplier.xlsx").Extract()
func Open(filename string) *Analyzer {
	return &Analyzer{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromGrid prepares an Analyzer for a grid built elsewhere, skipping
// acquisition entirely. Useful when the caller already parsed the input.
//
// Example:
//
//	g := grid.FromStrings(rows)
//	result, err := pricelens.FromGrid(g).Extract()
func FromGrid(g *grid.Grid) *Analyzer {
	return &Analyzer{
		source:  g,
		options: defaultOptions(),
	}
}

// clone creates a copy of the Analyzer with a deep copy of options, so
// each chain method returns an independent instance.
func (a *Analyzer) clone() *Analyzer {
	return &Analyzer{
		filename: a.filename,
		source:   a.source,
		options:  a.options.clone(),
	}
}

// Extract acquires a grid from the input, classifies its structure, and
// runs the matching extraction strategy.
func (a *Analyzer) Extract() (*Result, error) {
	g, tableID, err := a.acquire()
	if err != nil {
		return nil, err
	}
	return a.analyzeGrid(g, tableID)
}

// Classify acquires a grid and returns its structural classification
// without extracting records.
func (a *Analyzer) Classify() (structure.Classification, error) {
	g, _, err := a.acquire()
	if err != nil {
		return structure.Classification{}, err
	}
	return a.structureAnalyzer().Analyze(g), nil
}

// acquire resolves the input to a single best grid plus a diagnostic
// table identifier.
func (a *Analyzer) acquire() (*grid.Grid, string, error) {
	if a.source != nil {
		return a.source, "", nil
	}
	if a.filename == "" {
		return nil, "", fmt.Errorf("no input specified")
	}

	switch strings.ToLower(filepath.Ext(a.filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return a.acquireSheet()
	case ".pdf":
		return a.acquireCascade(a.options.methods)
	case ".html", ".htm":
		return a.acquireHTML()
	case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp":
		return a.acquireCascade([]cascade.Method{ocr.NewMethodWithConfig(a.options.ocrConfig)})
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(a.filename))
	}
}

func (a *Analyzer) acquireSheet() (*grid.Grid, string, error) {
	sheets, err := sheet.NewWithScorer(a.scorer()).ReadFile(a.filename)
	if err != nil {
		return nil, "", err
	}
	best, _ := sheet.BestSheet(sheets)
	return best.Grid, "sheet/" + best.Name, nil
}

func (a *Analyzer) acquireCascade(methods []cascade.Method) (*grid.Grid, string, error) {
	c := cascade.New(a.scorer(), methods...)
	if a.options.forceAllMethods {
		c = c.ForceAll()
	}
	candidates, err := c.Acquire(a.filename)
	if err != nil {
		return nil, "", err
	}
	best, _ := cascade.SelectBest(candidates)
	return best.Grid, best.ID(), nil
}

func (a *Analyzer) acquireHTML() (*grid.Grid, string, error) {
	grids, err := htmlgrid.ParseFile(a.filename)
	if err != nil {
		return nil, "", err
	}
	scorer := a.scorer()
	bestIdx := 0
	bestScore := scorer.Score(grids[0])
	for i, g := range grids[1:] {
		if s := scorer.Score(g); s > bestScore {
			bestIdx, bestScore = i+1, s
		}
	}
	return grids[bestIdx], fmt.Sprintf("html/t%d", bestIdx+1), nil
}

// analyzeGrid runs classification and extraction over an acquired grid.
func (a *Analyzer) analyzeGrid(g *grid.Grid, tableID string) (*Result, error) {
	classification := a.structureAnalyzer().Analyze(g)

	records, stats, err := a.extractor().Extract(g, classification)
	if err != nil {
		return nil, err
	}
	stats.TableID = tableID

	return &Result{
		Records:        records,
		Stats:          stats,
		Classification: classification,
	}, nil
}

func (a *Analyzer) scorer() *quality.Scorer {
	return quality.New()
}

func (a *Analyzer) structureAnalyzer() *structure.Analyzer {
	if a.options.structureConfig != nil {
		return structure.NewWithConfig(*a.options.structureConfig, a.options.classifier())
	}
	return structure.New()
}

func (a *Analyzer) extractor() *extract.Extractor {
	config := extract.DefaultConfig()
	if a.options.maxRecords > 0 {
		config.MaxRecords = a.options.maxRecords
	}
	return extract.NewWithConfig(config, a.options.classifier())
}

// DefaultMethods returns the standard PDF acquisition order: geometric
// text alignment, then gap-based text streaming, then OCR. The OCR
// method fails cleanly when built without the ocr tag.
func DefaultMethods() []cascade.Method {
	return []cascade.Method{
		pdftable.NewGeometryMethod(),
		pdftable.NewStreamMethod(),
		ocr.NewMethod(),
	}
}

// MethodNames returns the names of the acquisition methods the Analyzer
// would run for a PDF input, in priority order.
func (a *Analyzer) MethodNames() []string {
	names := make([]string, len(a.options.methods))
	for i, m := range a.options.methods {
		names[i] = m.Name()
	}
	return names
}
