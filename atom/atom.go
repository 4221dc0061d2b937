// Package atom turns styled text runs into the box/glue/penalty stream the
// layout package's line breakers consume — the same TeX-derived alphabet
// the pack's other typesetting engines (khipu) represent paragraphs with,
// adapted here to carry quill's glyph and font-registry data directly.
package atom

import "math"

// Atom is one element of a paragraph's linearized stream: a Box (glyphs
// that must stay together), a Glue (stretchable/shrinkable space), or a
// Penalty (a candidate or forbidden break point).
type Atom interface {
	Width() float64
	isAtom()
}

// Glyph is one shaped character: a codepoint, the font resource name it
// was rendered with, and its advance width in points (kerning already
// folded in against the preceding glyph in the same Box).
type Glyph struct {
	Rune     rune
	FontName string
	FontSize float64
	Advance  float64
}

// Box is an unbreakable run of shaped glyphs, e.g. a word.
type Box struct {
	Glyphs []Glyph
	width  float64
}

// NewBox computes a Box's width as the sum of its glyph advances.
func NewBox(glyphs []Glyph) Box {
	var w float64
	for _, g := range glyphs {
		w += g.Advance
	}
	return Box{Glyphs: glyphs, width: w}
}

// FixedBox is an empty Box of a fixed width: rigid horizontal space the
// breaker must account for but the renderer draws nothing into, e.g. a
// paragraph's first-line indent.
func FixedBox(width float64) Box { return Box{width: width} }

func (b Box) Width() float64 { return b.width }
func (Box) isAtom()          {}

// Glue is stretchable/shrinkable space: natural Width, plus the amount it
// can grow (Stretch) or shrink (Shrink) to help a line reach its target
// width (spec §4.3 adjustment ratio).
type Glue struct {
	W, Stretch, Shrink float64
}

func (g Glue) Width() float64 { return g.W }
func (Glue) isAtom()          {}

// SpaceGlue returns the inter-word Glue for a space of natural width sw
// in justified mode, using the classic TeX interword proportions
// (stretch = w/2, shrink = w/3) spec §4.3 calls out as the default.
func SpaceGlue(sw float64) Glue {
	return Glue{W: sw, Stretch: sw / 2, Shrink: sw / 3}
}

// raggedStretch is the "+Inf treated as large finite" interword stretch
// for non-justified modes: large enough that any leftover line space
// costs near-zero badness, finite so adjustment ratios stay well-defined.
const raggedStretch = 1e5

// RaggedGlue returns the inter-word Glue for ragged (left, right,
// centered) modes: near-infinite stretch and no shrink, so the breaker
// never squeezes a line to avoid a break it could take for free
// (spec §4.1).
func RaggedGlue(sw float64) Glue {
	return Glue{W: sw, Stretch: raggedStretch, Shrink: 0}
}

// Penalty is a candidate break point. Cost of +Inf forbids breaking here;
// -Inf forces a break. Flagged marks a "costly" break (e.g. a hyphen) that
// the breaker penalizes when two flagged breaks occur on consecutive
// lines (spec §4.3).
type Penalty struct {
	Cost    float64
	Flagged bool
	// Hyphen, when non-nil, is the glyph inserted at line end if the
	// break is taken here (a discretionary hyphen's pre-break text).
	Hyphen *Glyph
}

func (Penalty) Width() float64 { return 0 }
func (Penalty) isAtom()        {}

// Forced and Forbidden are the two infinite-cost penalties the breaker
// special-cases: a hard line break, and a position text must never break
// at (inside a word, absent hyphenation).
func Forced() Penalty    { return Penalty{Cost: math.Inf(-1)} }
func Forbidden() Penalty { return Penalty{Cost: math.Inf(1)} }

// HyphenPenaltyCost is the standard discretionary-hyphen penalty cost (spec
// §4.3): a real but disfavored break. Hyphenation returns a flagged Penalty
// carrying it.
const HyphenPenaltyCost = 50

func Hyphenation(hyphenGlyph Glyph) Penalty {
	g := hyphenGlyph
	return Penalty{Cost: HyphenPenaltyCost, Flagged: true, Hyphen: &g}
}
