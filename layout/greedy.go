package layout

import "github.com/quillpdf/quill/atom"

// Greedy breaks atoms into lines by first-fit: among the legal
// breakpoints since the last line start, it takes the latest one that
// still fits within width, only producing an Overfull line when no
// breakpoint fits at all. This is the fallback layout.Break falls back to
// when Knuth-Plass finds no feasible solution even at relaxed tolerance
// (spec §4.3).
func Greedy(atoms []atom.Atom, width float64) []Line {
	var lines []Line
	start := contentStart(atoms, 0)
	lastFit := -1

	i := start
	for i < len(atoms) {
		if isForced(atoms, i) {
			lines = append(lines, finishLine(atoms, start, i, width))
			start = contentStart(atoms, i+1)
			lastFit = -1
			i = start
			continue
		}
		if !isBreakpoint(atoms, i) {
			i++
			continue
		}
		w, _, _ := lineMetrics(atoms, start, i)
		if w <= width {
			lastFit = i
			i++
			continue
		}
		breakAt := lastFit
		if breakAt < 0 {
			breakAt = i
		}
		lines = append(lines, finishLine(atoms, start, breakAt, width))
		start = contentStart(atoms, breakAt+1)
		lastFit = -1
		i = start
	}
	if start < len(atoms) {
		lines = append(lines, finishLine(atoms, start, len(atoms), width))
	}
	return lines
}

func finishLine(atoms []atom.Atom, start, end int, width float64) Line {
	w, stretch, shrink := lineMetrics(atoms, start, end)
	ratio := adjustmentRatio(w, stretch, shrink, width)
	return buildLine(atoms, start, end, ratio)
}
