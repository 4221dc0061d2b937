// Package content builds PDF content-stream byte sequences: the operator
// stream a Page's contents object carries, plus the drawing and
// text-showing primitives quill's rendering step emits into it.
package content

import (
	"fmt"
	"strings"

	"github.com/quillpdf/quill/pdf"
)

// Builder accumulates content-stream operators in order, the same
// operator-at-a-time fluent style the pack's PDF library builds content
// streams with.
type Builder struct {
	buf strings.Builder
}

// NewBuilder returns an empty content-stream Builder.
func NewBuilder() *Builder { return &Builder{} }

// Bytes returns the accumulated content stream.
func (b *Builder) Bytes() []byte { return []byte(b.buf.String()) }

func (b *Builder) op(format string, args ...interface{}) *Builder {
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
	return b
}

func num(v float64) string { return pdf.FormatNumber(v) }

// PushState pushes ('q') and PopState pops ('Q') the graphics state stack.
func (b *Builder) PushState() *Builder { return b.op("q") }
func (b *Builder) PopState() *Builder  { return b.op("Q") }

// CM concatenates the matrix [a b c d e f] onto the current transform.
func (b *Builder) CM(a, c1, c2, d, e, f float64) *Builder {
	return b.op("%s %s %s %s %s %s cm", num(a), num(c1), num(c2), num(d), num(e), num(f))
}

// Translate emits a pure-translation 'cm'.
func (b *Builder) Translate(tx, ty float64) *Builder { return b.CM(1, 0, 0, 1, tx, ty) }

// SetLineWidth emits 'w'.
func (b *Builder) SetLineWidth(w float64) *Builder { return b.op("%s w", num(w)) }

// SetFillColor and SetStrokeColor emit 'rg'/'RG'.
func (b *Builder) SetFillColor(r, g, bl float64) *Builder {
	return b.op("%s %s %s rg", num(r), num(g), num(bl))
}
func (b *Builder) SetStrokeColor(r, g, bl float64) *Builder {
	return b.op("%s %s %s RG", num(r), num(g), num(bl))
}

// MoveTo, LineTo and ClosePath build a path ('m', 'l', 'h').
func (b *Builder) MoveTo(x, y float64) *Builder { return b.op("%s %s m", num(x), num(y)) }
func (b *Builder) LineTo(x, y float64) *Builder { return b.op("%s %s l", num(x), num(y)) }
func (b *Builder) ClosePath() *Builder          { return b.op("h") }

// Rect appends a rectangle subpath ('re').
func (b *Builder) Rect(x, y, w, h float64) *Builder {
	return b.op("%s %s %s %s re", num(x), num(y), num(w), num(h))
}

// BezierTo appends a cubic Bézier segment ('c'), used to approximate
// ellipses and rounded rectangles with four quarter-arcs.
func (b *Builder) BezierTo(x1, y1, x2, y2, x3, y3 float64) *Builder {
	return b.op("%s %s %s %s %s %s c", num(x1), num(y1), num(x2), num(y2), num(x3), num(y3))
}

// Stroke, Fill and FillStroke paint the current path ('S', 'f', 'B').
func (b *Builder) Stroke() *Builder     { return b.op("S") }
func (b *Builder) Fill() *Builder       { return b.op("f") }
func (b *Builder) FillStroke() *Builder { return b.op("B") }
func (b *Builder) EndPath() *Builder    { return b.op("n") }

// BeginText and EndText bracket a run of text-showing operators ('BT'/'ET').
func (b *Builder) BeginText() *Builder { return b.op("BT") }
func (b *Builder) EndText() *Builder   { return b.op("ET") }

// SetFont emits 'Tf' selecting font resource name at the given size.
func (b *Builder) SetFont(name string, size float64) *Builder {
	return b.op("/%s %s Tf", name, num(size))
}

// SetTextPosition emits 'Td', moving the text line matrix by (tx, ty).
func (b *Builder) SetTextPosition(tx, ty float64) *Builder {
	return b.op("%s %s Td", num(tx), num(ty))
}

// SetCharSpacing emits 'Tc'.
func (b *Builder) SetCharSpacing(cs float64) *Builder { return b.op("%s Tc", num(cs)) }

// SetWordSpacing emits 'Tw'. Unused by quill's own line renderer, which
// positions glue explicitly via Td instead; kept for callers building
// content streams directly against literal-space text.
func (b *Builder) SetWordSpacing(ws float64) *Builder { return b.op("%s Tw", num(ws)) }

// ShowTextHex emits 'Tj' with a hex-string operand, the encoding CID-keyed
// (embedded, Identity-H) text must use.
func (b *Builder) ShowTextHex(codes []uint16) *Builder {
	s := pdf.NewHexString(codesToBytes(codes))
	return b.op("%s Tj", s.WriteString())
}

// ShowTextLiteral emits 'Tj' with a literal-string operand, for
// Standard14/WinAnsi single-byte text.
func (b *Builder) ShowTextLiteral(bytes []byte) *Builder {
	s := pdf.NewString(string(bytes))
	return b.op("%s Tj", s.WriteString())
}

// TJSegment is one element of a kerned show-text operation: a displacement
// in thousandths of text space (positive moves subsequent glyphs left, the
// PDF 'TJ' convention) applied before Text's glyph codes.
type TJSegment struct {
	Adjust float64
	Text   string
}

// ShowTextAdjustedHex and ShowTextAdjustedLiteral emit 'TJ' with explicit
// inter-glyph adjustments, the operator kerned text requires.
func (b *Builder) ShowTextAdjustedHex(segs []TJSegment) *Builder {
	return b.showAdjusted(segs, true)
}

func (b *Builder) ShowTextAdjustedLiteral(segs []TJSegment) *Builder {
	return b.showAdjusted(segs, false)
}

func (b *Builder) showAdjusted(segs []TJSegment, isHex bool) *Builder {
	parts := make([]string, 0, len(segs)*2)
	for _, seg := range segs {
		if seg.Adjust != 0 {
			parts = append(parts, pdf.FormatNumber(seg.Adjust))
		}
		if seg.Text != "" {
			parts = append(parts, pdf.String{Val: seg.Text, IsHex: isHex}.WriteString())
		}
	}
	return b.op("[%s] TJ", strings.Join(parts, " "))
}

func codesToBytes(codes []uint16) string {
	buf := make([]byte, 0, len(codes)*2)
	for _, c := range codes {
		buf = append(buf, byte(c>>8), byte(c))
	}
	return string(buf)
}
