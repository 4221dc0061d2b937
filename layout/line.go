// Package layout breaks a paragraph's atom stream into justified lines:
// a greedy first-fit breaker, and a Knuth-Plass-style dynamic program that
// minimizes total "badness" across the whole paragraph (spec §4.3).
package layout

import "github.com/quillpdf/quill/atom"

// Line is one breaker output: the boxes and glue that make up the line's
// content, plus the adjustment ratio needed to stretch or shrink its glue
// to exactly fill Width.
type Line struct {
	Atoms    []atom.Atom
	Ratio    float64
	Overfull bool // true when Ratio had to be clamped past -1 (spec §4.3 soft Overfull)
}

// NaturalWidth returns the sum of the line's box widths and glue natural
// widths, ignoring Ratio.
func (l Line) NaturalWidth() float64 {
	var w float64
	for _, a := range l.Atoms {
		w += a.Width()
	}
	return w
}
