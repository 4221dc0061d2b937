package style

import "github.com/quillpdf/quill/font"

// Hyphenator is the capability a Style can carry to opt a run of text into
// hyphenation. It mirrors hyphen.Provider without importing the hyphen
// package, so style stays a leaf dependency for layout and the root
// package to build on.
type Hyphenator interface {
	// Positions returns the rune offsets within word at which a
	// discretionary hyphen may be inserted: p splits word into its first p
	// runes and the rest.
	Positions(word string) []int
}

// HyphenMode selects how a Style's hyphenation setting composes with its
// parent: Inherit (the default) takes whatever the parent resolved to,
// Off and On are explicit overrides a child can't silently lose.
type HyphenMode int

const (
	HyphenInherit HyphenMode = iota
	HyphenOff
	HyphenOn
)

// Style is an immutable record of text appearance. A zero-valued field
// means "inherit from the enclosing Style" when two Styles are merged via
// Override; Bold/Italic/Color use pointers so "explicitly false/unset" is
// distinguishable from "inherit".
type Style struct {
	Font        font.Font
	Size        float64
	Bold        *bool
	Italic      *bool
	Color       *Color
	LineSpacing float64
	Hyphenate   HyphenMode
	Hyphenator  Hyphenator
}

// Default is the Style every Span tree resolves against at the root, per
// spec §3's 1.25 default line spacing.
func Default(f font.Font) Style {
	return Style{
		Font:        f,
		Size:        10,
		LineSpacing: 1.25,
		Hyphenate:   HyphenOff,
	}
}

// Override returns the Style formed by layering child's explicit fields
// over s (the parent), right-biased: wherever child specifies a value, it
// wins; everywhere else s's value carries through.
func (s Style) Override(child Style) Style {
	out := s
	if child.Font != nil {
		out.Font = child.Font
	}
	if child.Size != 0 {
		out.Size = child.Size
	}
	if child.Bold != nil {
		out.Bold = child.Bold
	}
	if child.Italic != nil {
		out.Italic = child.Italic
	}
	if child.Color != nil {
		out.Color = child.Color
	}
	if child.LineSpacing != 0 {
		out.LineSpacing = child.LineSpacing
	}
	if child.Hyphenate != HyphenInherit {
		out.Hyphenate = child.Hyphenate
		out.Hyphenator = child.Hyphenator
	}
	return out
}

// IsBold and IsItalic resolve the pointer fields to a concrete bool,
// defaulting to false when unset.
func (s Style) IsBold() bool   { return s.Bold != nil && *s.Bold }
func (s Style) IsItalic() bool { return s.Italic != nil && *s.Italic }

// ResolvedColor resolves Color to Black when unset.
func (s Style) ResolvedColor() Color {
	if s.Color == nil {
		return Black
	}
	return *s.Color
}

// HyphenatesWith returns the Style's effective hyphenator and whether
// hyphenation is enabled at all.
func (s Style) HyphenatesWith() (Hyphenator, bool) {
	if s.Hyphenate != HyphenOn || s.Hyphenator == nil {
		return nil, false
	}
	return s.Hyphenator, true
}

func boolPtr(b bool) *bool { return &b }

// Bold and Italic are convenience constructors for a Style fragment that
// toggles one property, meant to be passed into Override.
func Bold(on bool) Style      { return Style{Bold: boolPtr(on)} }
func Italic(on bool) Style    { return Style{Italic: boolPtr(on)} }
func WithColor(c Color) Style { return Style{Color: &c} }
