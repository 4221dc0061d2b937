package quill

import "github.com/quillpdf/quill/style"

// Block is one element of an AutoPage's flowing content: a Paragraph or
// a Rule (spec §6).
type Block interface {
	isBlock()
}

// Paragraph is a styled-text block, broken into lines by layout.Break (or
// layout.Greedy when Optimal is false) and packed into frames by
// frame.Fill.
type Paragraph struct {
	Spans        style.Span
	Style        style.Style
	Align        Align
	Indent       float64
	Optimal      bool // true selects Knuth-Plass, false selects the greedy breaker
	AvoidOrphans bool
}

func (Paragraph) isBlock() {}

// NewParagraph returns a Paragraph with the defaults flowing text wants:
// optimal (Knuth-Plass) breaking and orphan/widow avoidance on. Literal
// construction leaves both off.
func NewParagraph(spans style.Span) Paragraph {
	return Paragraph{Spans: spans, Optimal: true, AvoidOrphans: true}
}

// Rule is a horizontal divider spanning the current frame's width.
type Rule struct {
	Margin      float64
	StrokeColor style.Color
	StrokeWidth float64
}

func (Rule) isBlock() {}
