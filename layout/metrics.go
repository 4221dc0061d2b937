package layout

import (
	"math"

	"github.com/quillpdf/quill/atom"
	"github.com/quillpdf/quill/quilllog"
)

// isBreakpoint reports whether the atom at index i in atoms is a legal
// place to end a line: a Penalty with finite-or-forced cost, or a Glue
// immediately preceded by a non-discardable atom (a Box).
func isBreakpoint(atoms []atom.Atom, i int) bool {
	switch a := atoms[i].(type) {
	case atom.Penalty:
		return a.Cost < math.Inf(1)
	case atom.Glue:
		return i > 0 && isBox(atoms[i-1])
	default:
		return false
	}
}

func isBox(a atom.Atom) bool {
	_, ok := a.(atom.Box)
	return ok
}

func isForced(atoms []atom.Atom, i int) bool {
	p, ok := atoms[i].(atom.Penalty)
	return ok && math.IsInf(p.Cost, -1)
}

func isFlagged(atoms []atom.Atom, i int) bool {
	p, ok := atoms[i].(atom.Penalty)
	return ok && p.Flagged
}

// contentStart returns the first index at or after from that is not a
// discardable Glue — glue directly after a break is dropped, per spec
// §4.3.
func contentStart(atoms []atom.Atom, from int) int {
	i := from
	for i < len(atoms) {
		if _, ok := atoms[i].(atom.Glue); !ok {
			break
		}
		i++
	}
	return i
}

// lineMetrics sums the width/stretch/shrink of atoms[start:end), and — if
// the breakpoint at end is a discretionary-hyphen Penalty — adds the
// hyphen glyph's width so the rendered line accounts for it.
func lineMetrics(atoms []atom.Atom, start, end int) (width, stretch, shrink float64) {
	for i := start; i < end; i++ {
		switch a := atoms[i].(type) {
		case atom.Box:
			width += a.Width()
		case atom.Glue:
			width += a.W
			stretch += a.Stretch
			shrink += a.Shrink
		}
	}
	if end < len(atoms) {
		if p, ok := atoms[end].(atom.Penalty); ok && p.Hyphen != nil {
			width += p.Hyphen.Advance
		}
	}
	return
}

// adjustmentRatio computes how far a line of the given natural metrics
// must stretch (positive) or shrink (negative) to exactly fill target.
func adjustmentRatio(width, stretch, shrink, target float64) float64 {
	diff := target - width
	if diff >= 0 {
		if stretch <= 0 {
			if diff == 0 {
				return 0
			}
			return math.Inf(1)
		}
		return diff / stretch
	}
	if shrink <= 0 {
		return math.Inf(-1)
	}
	return diff / shrink
}

// badness approximates TeX's badness function: 100*|r|^3, clamped to
// 10000 (spec §4.3).
func badness(r float64) float64 {
	if math.IsInf(r, 0) {
		return 10000
	}
	b := 100 * math.Abs(r*r*r)
	if b > 10000 {
		b = 10000
	}
	return b
}

// fitnessClass buckets an adjustment ratio into one of four classes used
// to penalize visually jarring adjacent line shapes (spec §4.3).
func fitnessClass(r float64) int {
	switch {
	case r < -0.5:
		return 3 // tight
	case r <= 0.5:
		return 2 // decent
	case r <= 1.0:
		return 1 // loose
	default:
		return 0 // very loose
	}
}

// buildLine materializes a Line from atoms[start:end), appending the
// discretionary hyphen's glyph as a trailing Box if the break atom calls
// for one.
func buildLine(atoms []atom.Atom, start, end int, ratio float64) Line {
	content := append([]atom.Atom(nil), atoms[start:end]...)
	if end < len(atoms) {
		if p, ok := atoms[end].(atom.Penalty); ok && p.Hyphen != nil {
			content = append(content, atom.NewBox([]atom.Glyph{*p.Hyphen}))
		}
	}
	overfull := ratio < -1
	if overfull {
		quilllog.Log.Debug("layout: overfull line, shrink exhausted at ratio %.3f", ratio)
		ratio = -1
	}
	return Line{Atoms: content, Ratio: ratio, Overfull: overfull}
}
