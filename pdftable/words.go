// Package pdftable recovers tabular grids from the text layer of PDF
// documents. Two methods are provided: a geometric one that aligns words
// against clustered column boundaries, and a stream one that splits rows
// on large horizontal gaps. Both implement the acquisition method
// interface so they can run inside a cascade.
package pdftable

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Config holds the spatial tolerances shared by both methods.
type Config struct {
	// RowTolerance is the maximum vertical distance, in points, between
	// two fragments considered to be on the same row.
	// Default: 3.0
	RowTolerance float64

	// JoinGap is the maximum horizontal gap, in points, between two
	// fragments merged into a single word.
	// Default: 2.5
	JoinGap float64

	// ColumnTolerance is the clustering tolerance for column boundary
	// detection in the geometric method.
	// Default: 6.0
	ColumnTolerance float64

	// GapThreshold is the minimum horizontal gap, in points, that starts
	// a new cell in the stream method.
	// Default: 12.0
	GapThreshold float64

	// MinRows and MinCols reject degenerate detections. A run of fewer
	// rows or columns is prose, not a table.
	// Defaults: 3, 2
	MinRows int
	MinCols int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		RowTolerance:    3.0,
		JoinGap:         2.5,
		ColumnTolerance: 6.0,
		GapThreshold:    12.0,
		MinRows:         3,
		MinCols:         2,
	}
}

// word is a horizontally merged run of text fragments on a page.
type word struct {
	text string
	x    float64 // left edge
	y    float64 // baseline, PDF coordinates (origin bottom-left)
	w    float64 // advance width
}

func (w word) right() float64 { return w.x + w.w }

// readPageWords extracts merged words for every page of the document.
// The outer slice is indexed by page, starting at page 1 in slot 0.
func readPageWords(path string, config Config) ([][]word, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdftable: open %s: %w", path, err)
	}
	defer f.Close()

	pages := make([][]word, 0, r.NumPage())
	for n := 1; n <= r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, mergeWords(p.Content().Text, config))
	}
	return pages, nil
}

// mergeWords joins adjacent glyph fragments into words. Fragments on the
// same baseline separated by less than JoinGap belong to one word.
func mergeWords(texts []pdf.Text, config Config) []word {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool {
		if diff := sorted[i].Y - sorted[j].Y; diff > config.RowTolerance || diff < -config.RowTolerance {
			return sorted[i].Y > sorted[j].Y // top of page first
		}
		return sorted[i].X < sorted[j].X
	})

	var words []word
	cur := word{text: sorted[0].S, x: sorted[0].X, y: sorted[0].Y, w: sorted[0].W}
	for _, t := range sorted[1:] {
		sameRow := t.Y-cur.y <= config.RowTolerance && cur.y-t.Y <= config.RowTolerance
		if sameRow && t.X-cur.right() <= config.JoinGap {
			cur.text += t.S
			cur.w = t.X + t.W - cur.x
			continue
		}
		if s := strings.TrimSpace(cur.text); s != "" {
			cur.text = s
			words = append(words, cur)
		}
		cur = word{text: t.S, x: t.X, y: t.Y, w: t.W}
	}
	if s := strings.TrimSpace(cur.text); s != "" {
		cur.text = s
		words = append(words, cur)
	}
	return words
}

// groupRows buckets words into rows by vertical proximity. Rows come back
// top of page first, each row sorted left to right.
func groupRows(words []word, tolerance float64) [][]word {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].y > sorted[j].y })

	var rows [][]word
	current := []word{sorted[0]}
	rowY := sorted[0].y
	for _, w := range sorted[1:] {
		if rowY-w.y > tolerance {
			rows = append(rows, current)
			current = nil
			rowY = w.y
		}
		current = append(current, w)
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].x < row[j].x })
	}
	return rows
}
