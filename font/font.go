// Package font models the font handles quill's shaper and writer consume:
// the built-in Standard14 metrics and embedded TrueType fonts, both behind
// a single Font interface, plus the per-document Registry that assigns PDF
// resource names and accumulates used-codepoint sets.
package font

// Font is the capability every font handle exposes to the shaper and the
// writer, per spec §3 "Font handle".
type Font interface {
	// Name is a human-readable identifier, used as the PDF /BaseFont value
	// (before any subset tag is prefixed).
	Name() string

	// IsEmbedded reports whether this is an embedded TrueType font (true)
	// or one of the Standard14 fonts (false).
	IsEmbedded() bool

	// AdvanceWidth returns the glyph advance for r as a fraction of the em
	// (multiply by the font size for points). If r is not representable,
	// Standard14 fonts measure U+003F instead and embedded fonts return 0
	// (the glyph is drawn as .notdef); the substitution is logged at Debug
	// level and is not recorded on the handle.
	AdvanceWidth(r rune) float64

	// Kern returns the pairwise kerning adjustment between a and b, in the
	// same fraction-of-em units. Zero if the font carries no kerning data.
	Kern(a, b rune) float64

	// Ascent, Descent and CapHeight are expressed as a fraction of the
	// font size (e.g. Ascent() * size gives points).
	Ascent() float64
	Descent() float64
	CapHeight() float64

	// GlyphID maps a codepoint to a glyph index. ok is false when the
	// codepoint is not covered by the font's cmap.
	GlyphID(r rune) (id uint16, ok bool)
}

// Metrics bundles the whole-font scalar measurements used across Standard14
// and embedded fonts.
type Metrics struct {
	UnitsPerEm float64
	Ascent     float64
	Descent    float64
	CapHeight  float64
}

// Scale converts a raw font-unit value to a fraction of the em square.
func (m Metrics) Scale(v float64) float64 {
	if m.UnitsPerEm == 0 {
		return 0
	}
	return v / m.UnitsPerEm
}
