package atom

import "github.com/quillpdf/quill/font"

// ShapeRun converts the runes of text, rendered at fontSize in f and
// tracked in reg, into a slice of Glyphs. Kerning is applied only between
// glyphs within this call — callers shape one styled run at a time, so
// kerning never crosses a style boundary (spec §4.1).
func ShapeRun(text string, f font.Font, fontSize float64, reg *font.Registry) []Glyph {
	runes := []rune(text)
	glyphs := make([]Glyph, 0, len(runes))
	name := ""
	for i, r := range runes {
		if reg != nil {
			name = reg.Use(f, r)
		}
		advance := f.AdvanceWidth(r) * fontSize
		if i > 0 {
			advance += f.Kern(runes[i-1], r) * fontSize
		}
		glyphs = append(glyphs, Glyph{Rune: r, FontName: name, FontSize: fontSize, Advance: advance})
	}
	return glyphs
}
