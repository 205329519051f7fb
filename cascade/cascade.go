// Package cascade sequences competing table-acquisition methods for
// non-spreadsheet sources. Methods are tried in a fixed priority order and
// the cascade stops at the first one that yields any non-empty tables; every
// candidate is quality-scored so the single best table can be selected
// deterministically.
//
// The method list is first-class data rather than inline control flow: the
// order is inspectable and testable, and a method that fails never prevents
// the next one from running.
package cascade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pricelens/pricelens/grid"
	"github.com/pricelens/pricelens/quality"
)

// ErrNoTables is returned by Acquire when every method either failed or
// produced no tables.
var ErrNoTables = errors.New("no tables found by any method")

// Extraction is one table produced by a method, tagged with its page.
type Extraction struct {
	Grid *grid.Grid
	Page int
}

// Method is one table-acquisition strategy. Implementations must be safe to
// call once per document and must not retry internally; retry policy
// belongs to the caller's collaborators, not the cascade.
type Method interface {
	// Name identifies the method in candidate tables and diagnostics.
	Name() string

	// Extract produces zero or more tables from the document at path.
	Extract(path string) ([]Extraction, error)
}

// CandidateTable is one extraction attempt's output, competing with others
// for selection.
type CandidateTable struct {
	// Grid is the extracted table.
	Grid *grid.Grid

	// Method is the name of the method that produced it.
	Method string

	// Page is the 1-based page the table came from.
	Page int

	// Quality is the table's quality score in [0,1].
	Quality float64
}

// ID returns a stable identifier for diagnostics, e.g. "text-geometry/p2".
func (c CandidateTable) ID() string {
	return fmt.Sprintf("%s/p%d", c.Method, c.Page)
}

// Cascade runs an ordered list of acquisition methods.
type Cascade struct {
	methods  []Method
	scorer   *quality.Scorer
	forceAll bool
}

// New creates a cascade over the given methods, tried in argument order.
func New(scorer *quality.Scorer, methods ...Method) *Cascade {
	return &Cascade{methods: methods, scorer: scorer}
}

// ForceAll returns a cascade that runs every method even after one has
// produced tables, letting later methods compete on quality alone.
func (c *Cascade) ForceAll() *Cascade {
	return &Cascade{methods: c.methods, scorer: c.scorer, forceAll: true}
}

// MethodNames returns the method names in priority order.
func (c *Cascade) MethodNames() []string {
	names := make([]string, len(c.methods))
	for i, m := range c.methods {
		names[i] = m.Name()
	}
	return names
}

// Acquire runs the methods in priority order and returns all candidate
// tables from the first method that yields any, quality-scored. Method
// failures are collected, not fatal: a failing method simply passes control
// to the next one. When nothing produces tables, the aggregated failures are
// wrapped in the returned error.
func (c *Cascade) Acquire(path string) ([]CandidateTable, error) {
	var candidates []CandidateTable
	var failures []string

	for _, m := range c.methods {
		extractions, err := m.Extract(path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", m.Name(), err))
			continue
		}

		found := false
		for _, ex := range extractions {
			if ex.Grid.IsEmpty() {
				continue
			}
			candidates = append(candidates, CandidateTable{
				Grid:    ex.Grid,
				Method:  m.Name(),
				Page:    ex.Page,
				Quality: c.scorer.Score(ex.Grid),
			})
			found = true
		}

		if found && !c.forceAll {
			break
		}
	}

	if len(candidates) == 0 {
		if len(failures) > 0 {
			return nil, fmt.Errorf("%w (%s)", ErrNoTables, strings.Join(failures, "; "))
		}
		return nil, ErrNoTables
	}
	return candidates, nil
}

// SelectBest returns the highest-quality candidate. Ties keep the earliest
// candidate, which is the earliest method in priority order; given equal
// inputs the result is always the same.
func SelectBest(candidates []CandidateTable) (CandidateTable, bool) {
	if len(candidates) == 0 {
		return CandidateTable{}, false
	}
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.Quality > best.Quality {
			best = cand
		}
	}
	return best, true
}
