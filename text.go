package quill

import (
	"math"

	"github.com/quillpdf/quill/atom"
	"github.com/quillpdf/quill/content"
	"github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/layout"
)

// effectiveAlign resolves a paragraph's alignment for one line: the last
// line of a justified paragraph renders left-aligned (spec scenario 4).
func effectiveAlign(a Align, isLast bool) Align {
	if a == AlignJustify && isLast {
		return AlignLeft
	}
	return a
}

// renderLine draws one already-broken Line at (originX, baselineY). The
// text cursor is advanced with Td before every box after the first; since
// Td is relative to the previous line-matrix origin (the previous box's
// start), each offset is the previous box's width plus the intervening
// glue. Justified lines use the breaker's adjustment ratio so Σ(box
// widths) + Σ(adjusted glue) lands on targetWidth to the point (spec P1).
func renderLine(b *content.Builder, fonts map[string]font.Font, line layout.Line, align Align, originX, baselineY, targetWidth float64) {
	natural := line.NaturalWidth()
	var xOffset float64
	switch align {
	case AlignRight:
		xOffset = targetWidth - natural
	case AlignCenter:
		xOffset = (targetWidth - natural) / 2
	}
	justify := align == AlignJustify

	b.BeginText()
	cursorSet := false
	var pendingDX float64
	for _, a := range line.Atoms {
		switch v := a.(type) {
		case atom.Glue:
			pendingDX += glueWidth(v, line.Ratio, justify)
		case atom.Box:
			if !cursorSet {
				b.SetTextPosition(originX+xOffset, baselineY)
				cursorSet = true
			} else if pendingDX != 0 {
				b.SetTextPosition(pendingDX, 0)
			}
			drawBox(b, fonts, v)
			pendingDX = v.Width()
		}
	}
	b.EndText()
}

// glueWidth returns a glue's rendered width: natural for ragged lines,
// stretched or shrunk by the line's adjustment ratio when justifying.
func glueWidth(g atom.Glue, ratio float64, justify bool) float64 {
	if !justify || ratio == 0 {
		return g.W
	}
	if ratio > 0 {
		if math.IsInf(g.Stretch, 1) {
			return g.W
		}
		return g.W + ratio*g.Stretch
	}
	return g.W + ratio*g.Shrink
}

// drawBox shows a Box's glyphs, grouping consecutive glyphs that share a
// font and size into a single show-text operation.
func drawBox(b *content.Builder, fonts map[string]font.Font, box atom.Box) {
	i := 0
	for i < len(box.Glyphs) {
		g := box.Glyphs[i]
		j := i + 1
		for j < len(box.Glyphs) && box.Glyphs[j].FontName == g.FontName && box.Glyphs[j].FontSize == g.FontSize {
			j++
		}
		b.SetFont(g.FontName, g.FontSize)
		showGroup(b, fonts[g.FontName], box.Glyphs[i:j])
		i = j
	}
}

// showGroup emits one show-text operation for glyphs sharing a font and
// size: a plain Tj when no pair kerns, otherwise a TJ whose adjustments
// reproduce the kerning already folded into the glyphs' measured advances.
func showGroup(b *content.Builder, f font.Font, glyphs []atom.Glyph) {
	embedded := f != nil && f.IsEmbedded()
	segs := []content.TJSegment{{}}
	for k, gl := range glyphs {
		if k > 0 && f != nil {
			if kern := f.Kern(glyphs[k-1].Rune, gl.Rune); kern != 0 {
				// TJ counts positive thousandths leftward; a positive kern
				// widens the pair, so the signs flip
				segs = append(segs, content.TJSegment{Adjust: -kern * 1000})
			}
		}
		last := &segs[len(segs)-1]
		last.Text += string(glyphCode(f, gl.Rune, embedded))
	}

	if len(segs) == 1 {
		if embedded {
			b.ShowTextHex(codesOf(f, glyphs))
		} else {
			b.ShowTextLiteral([]byte(segs[0].Text))
		}
		return
	}
	if embedded {
		b.ShowTextAdjustedHex(segs)
	} else {
		b.ShowTextAdjustedLiteral(segs)
	}
}

// glyphCode encodes one codepoint for the content stream: the two-byte
// glyph id under Identity-H for embedded fonts, the WinAnsi byte (with the
// '?' fallback) for Standard14.
func glyphCode(f font.Font, r rune, embedded bool) []byte {
	if embedded {
		id, _ := f.GlyphID(r)
		return []byte{byte(id >> 8), byte(id)}
	}
	id, ok := uint16(0), false
	if f != nil {
		id, ok = f.GlyphID(r)
	}
	if !ok {
		id = uint16('?')
	}
	return []byte{byte(id)}
}

func codesOf(f font.Font, glyphs []atom.Glyph) []uint16 {
	codes := make([]uint16, 0, len(glyphs))
	for _, gl := range glyphs {
		id, _ := f.GlyphID(gl.Rune)
		codes = append(codes, id)
	}
	return codes
}
