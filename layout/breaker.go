package layout

import (
	"math"

	"github.com/quillpdf/quill/atom"
)

const (
	flaggedPenaltyDemerit  = 100
	fitnessMismatchDemerit = 1000
	baseTolerance          = 10
	relaxedTolerance       = 20
)

// node is one entry in the dynamic program: the best known way to reach
// the breakpoint at atoms[index].
type node struct {
	demerits float64
	prev     int
	ratio    float64
	fitness  int
	flagged  bool
	reached  bool
}

// Break lays out atoms into the set of lines that minimizes total
// demerits across the whole paragraph (Knuth-Plass), widening tolerance
// once if no feasible solution exists, and falling back to Greedy if
// nothing fits even then (spec §4.3, P1/P4/P5).
func Break(atoms []atom.Atom, width float64) []Line {
	if lines, ok := tryBreak(atoms, width, baseTolerance); ok {
		return lines
	}
	if lines, ok := tryBreak(atoms, width, relaxedTolerance); ok {
		return lines
	}
	return Greedy(atoms, width)
}

// candidates returns every legal breakpoint index in atoms, in ascending
// order; the stream's final atom (the paragraph terminator's forced
// penalty) is always included.
func candidates(atoms []atom.Atom) []int {
	var idx []int
	for i := range atoms {
		if isBreakpoint(atoms, i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// tryBreak runs the dynamic program with a given tolerance (as a badness
// ceiling of tolerance*100) and reports ok=false if no path reaches the
// final breakpoint — meaning every arrangement either overflows beyond
// shrink or underflows beyond stretch past what the tolerance allows.
func tryBreak(atoms []atom.Atom, width float64, tolerance int) ([]Line, bool) {
	if len(atoms) == 0 {
		return nil, true
	}
	cand := candidates(atoms)
	if len(cand) == 0 {
		return nil, false
	}
	badnessCeiling := float64(tolerance) * 100

	nodes := make(map[int]*node, len(cand)+1)
	nodes[-1] = &node{demerits: 0, prev: -2, reached: true, fitness: 2}

	starts := map[int]int{-1: contentStart(atoms, 0)}

	for ci, k := range cand {
		forced := isForced(atoms, k)
		var best *node
		var bestPrev int
		var bestFitDist, bestBadness float64
		flagged := isFlagged(atoms, k)

		// try every still-reachable previous breakpoint
		prevKeys := make([]int, 0, ci+1)
		prevKeys = append(prevKeys, -1)
		for _, pc := range cand[:ci] {
			prevKeys = append(prevKeys, pc)
		}

		for _, p := range prevKeys {
			pn, ok := nodes[p]
			if !ok || !pn.reached {
				continue
			}
			start, ok := starts[p]
			if !ok {
				start = contentStart(atoms, p+1)
				starts[p] = start
			}
			if start > k {
				continue
			}
			w, stretch, shrink := lineMetrics(atoms, start, k)
			r := adjustmentRatio(w, stretch, shrink, width)
			b := badness(r)

			feasible := r >= -1 && b <= badnessCeiling
			// A forced break may end a short line (such a line carries
			// fill glue), but never an overfull one.
			if !feasible && !(forced && r >= -1) {
				continue
			}

			fc := fitnessClass(r)
			fitDist := float64(absInt(fc - pn.fitness))
			d := demeritsFor(b, penaltyCostAt(atoms, k), pn.fitness, fc, pn.flagged, flagged)
			total := pn.demerits + d
			// ties broken by fitness distance, then raw badness, then
			// the earlier predecessor, keeping output deterministic
			better := best == nil || total < best.demerits ||
				(total == best.demerits && (fitDist < bestFitDist ||
					(fitDist == bestFitDist && (b < bestBadness ||
						(b == bestBadness && p < bestPrev)))))
			if better {
				best = &node{demerits: total, prev: p, ratio: r, fitness: fc, flagged: flagged, reached: true}
				bestPrev, bestFitDist, bestBadness = p, fitDist, b
			}
		}

		if best == nil {
			if forced {
				// no line reaches this forced break, and no path may skip it
				return nil, false
			}
			nodes[k] = &node{reached: false}
			continue
		}
		nodes[k] = best
		starts[k] = contentStart(atoms, k+1)

		if forced {
			// A forced break prunes every earlier active node: nothing
			// before it can ever be reached again.
			for key, n := range nodes {
				if key != k {
					n.reached = false
				}
			}
		}
	}

	last := cand[len(cand)-1]
	finalNode, ok := nodes[last]
	if !ok || !finalNode.reached {
		return nil, false
	}

	// backtrack
	var breakpoints []int
	for k := last; k != -1; {
		breakpoints = append([]int{k}, breakpoints...)
		n := nodes[k]
		k = n.prev
	}

	lines := make([]Line, 0, len(breakpoints))
	start := contentStart(atoms, 0)
	for _, k := range breakpoints {
		n := nodes[k]
		lines = append(lines, buildLine(atoms, start, k, n.ratio))
		start = contentStart(atoms, k+1)
	}
	return lines, true
}

func penaltyCostAt(atoms []atom.Atom, i int) float64 {
	if p, ok := atoms[i].(atom.Penalty); ok {
		return p.Cost
	}
	return 0
}

// demeritsFor implements Knuth's demerit formula: a quadratic penalty on
// badness, a quadratic bonus for negative (favorable) penalties, and flat
// additions for two consecutive flagged (hyphenated) breaks or a jarring
// jump between fitness classes.
func demeritsFor(b, penaltyCost float64, prevFitness, fitness int, prevFlagged, flagged bool) float64 {
	var d float64
	switch {
	case math.IsInf(penaltyCost, -1):
		d = math.Pow(1+b, 2)
	case penaltyCost >= 0:
		d = math.Pow(1+b+penaltyCost, 2)
	default:
		d = math.Pow(1+b, 2) - penaltyCost*penaltyCost
	}
	if prevFlagged && flagged {
		d += flaggedPenaltyDemerit
	}
	if absInt(fitness-prevFitness) > 1 {
		d += fitnessMismatchDemerit
	}
	return d
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
