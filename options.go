package pricelens

import (
	"github.com/pricelens/pricelens/cascade"
	"github.com/pricelens/pricelens/classify"
	"github.com/pricelens/pricelens/ocr"
	"github.com/pricelens/pricelens/structure"
)

// options holds the analyzer's configuration.
type options struct {
	maxRecords      int
	forceAllMethods bool
	methods         []cascade.Method
	ocrConfig       ocr.Config
	structureConfig *structure.Config
	classifyConfig  *classify.Config
}

// defaultOptions returns the default analyzer options.
func defaultOptions() options {
	return options{
		maxRecords:      0, // 0 means the extractor's default cap
		forceAllMethods: false,
		methods:         DefaultMethods(),
		ocrConfig:       ocr.DefaultConfig(),
	}
}

// clone creates a deep copy of options.
func (o options) clone() options {
	newOpts := o
	newOpts.methods = append([]cascade.Method(nil), o.methods...)
	if o.structureConfig != nil {
		cfg := *o.structureConfig
		newOpts.structureConfig = &cfg
	}
	if o.classifyConfig != nil {
		cfg := *o.classifyConfig
		newOpts.classifyConfig = &cfg
	}
	return newOpts
}

// classifier builds the classifier the analyzer and extractor share.
func (o options) classifier() *classify.Classifier {
	if o.classifyConfig != nil {
		return classify.NewWithConfig(*o.classifyConfig)
	}
	return classify.New()
}

// MaxRecords caps how many records one extraction returns.
//
// Example:
//
//	result, err := pricelens.Open("huge.xlsx").MaxRecords(100).Extract()
func (a *Analyzer) MaxRecords(n int) *Analyzer {
	newA := a.clone()
	newA.options.maxRecords = n
	return newA
}

// ForceAllMethods runs every acquisition method instead of stopping at
// the first one that yields tables, then picks the best table across all
// of them. Slower, occasionally more accurate on difficult PDFs.
//
// Example:
//
//	result, err := pricelens.Open("scan.pdf").ForceAllMethods().Extract()
func (a *Analyzer) ForceAllMethods() *Analyzer {
	newA := a.clone()
	newA.options.forceAllMethods = true
	return newA
}

// Methods replaces the acquisition methods used for PDF input.
//
// Example:
//
//	result, err := pricelens.Open("doc.pdf").
//	    Methods(pdftable.NewStreamMethod()).
//	    Extract()
func (a *Analyzer) Methods(methods ...cascade.Method) *Analyzer {
	newA := a.clone()
	newA.options.methods = append([]cascade.Method(nil), methods...)
	return newA
}

// OCRLanguages sets the tesseract language models used for scanned
// input, "+"-separated for multiple.
//
// Example:
//
//	result, err := pricelens.Open("scan.jpg").OCRLanguages("eng+rus").Extract()
func (a *Analyzer) OCRLanguages(lang string) *Analyzer {
	newA := a.clone()
	newA.options.ocrConfig.Language = lang
	for i, m := range newA.options.methods {
		if m.Name() == "ocr" {
			newA.options.methods[i] = ocr.NewMethodWithConfig(newA.options.ocrConfig)
		}
	}
	return newA
}

// StructureConfig replaces the structure analyzer's configuration.
func (a *Analyzer) StructureConfig(config structure.Config) *Analyzer {
	newA := a.clone()
	newA.options.structureConfig = &config
	return newA
}

// ClassifyConfig replaces the cell classifier's configuration, which
// feeds both structure analysis and extraction.
func (a *Analyzer) ClassifyConfig(config classify.Config) *Analyzer {
	newA := a.clone()
	newA.options.classifyConfig = &config
	return newA
}
