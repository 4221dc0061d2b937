package atom

import (
	"math"
	"unicode"

	"github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/style"
)

// Fill is infinitely stretchable, zero-width glue — used ahead of a
// forced break so the breaker's adjustment-ratio math treats the
// remainder of the line as legitimately justified empty space rather than
// an overfull line (spec §4.3).
func Fill() Glue { return Glue{Stretch: math.Inf(1)} }

// ForcedBreak returns the atoms for an explicit line break within a
// paragraph (a literal newline in input text): fill glue followed by a
// break the breaker must take.
func ForcedBreak() []Atom { return []Atom{Fill(), Forced()} }

// ParagraphEnd returns the atoms every paragraph's stream must end with,
// guaranteeing the breaker always has a final legal (forced) break.
func ParagraphEnd() []Atom { return []Atom{Fill(), Forced()} }

// BuildParagraph shapes runs into the full box/glue/penalty stream for one
// paragraph: words become Boxes (split further at discretionary hyphen
// points when the run's Style enables hyphenation), runs of whitespace
// become a single Glue, and embedded '\n' characters become forced
// breaks. justified selects the interword glue the breaker sees: elastic
// TeX-proportion glue when true, ragged-mode glue (huge stretch, no
// shrink) otherwise (spec §4.1).
func BuildParagraph(runs []style.Run, reg *font.Registry, justified bool) []Atom {
	var out []Atom
	for _, run := range runs {
		out = append(out, buildRun(run, reg, justified)...)
	}
	return out
}

func buildRun(run style.Run, reg *font.Registry, justified bool) []Atom {
	var out []Atom
	f := run.Style.Font
	size := run.Style.Size
	hyph, hyphOK := run.Style.HyphenatesWith()

	text := []rune(run.Text)
	i := 0
	for i < len(text) {
		switch {
		case text[i] == '\n':
			out = append(out, ForcedBreak()...)
			i++
		case unicode.IsSpace(text[i]):
			j := i
			for j < len(text) && unicode.IsSpace(text[j]) && text[j] != '\n' {
				j++
			}
			// shaped for width only — glue never shows a glyph, so the
			// space codepoint stays out of the font's used set
			glyphs := ShapeRun(string(text[i:j]), f, size, nil)
			// the glue is itself a legal breakpoint; breaking there drops it
			if justified {
				out = append(out, SpaceGlue(totalWidth(glyphs)))
			} else {
				out = append(out, RaggedGlue(totalWidth(glyphs)))
			}
			i = j
		default:
			j := i
			for j < len(text) && !unicode.IsSpace(text[j]) {
				j++
			}
			word := string(text[i:j])
			out = append(out, buildWord(word, f, size, reg, hyph, hyphOK)...)
			i = j
		}
	}
	return out
}

func buildWord(word string, f font.Font, size float64, reg *font.Registry, hyph style.Hyphenator, hyphOK bool) []Atom {
	if !hyphOK {
		return []Atom{NewBox(ShapeRun(word, f, size, reg))}
	}

	positions := hyph.Positions(word)
	if len(positions) == 0 {
		return []Atom{NewBox(ShapeRun(word, f, size, reg))}
	}

	runes := []rune(word)
	var out []Atom
	start := 0
	hyphenGlyphs := ShapeRun("-", f, size, reg)
	var hyphenGlyph Glyph
	if len(hyphenGlyphs) > 0 {
		hyphenGlyph = hyphenGlyphs[0]
	}
	for _, p := range positions {
		if p <= start || p >= len(runes) {
			continue
		}
		segment := string(runes[start:p])
		out = append(out, NewBox(ShapeRun(segment, f, size, reg)))
		out = append(out, Hyphenation(hyphenGlyph))
		start = p
	}
	out = append(out, NewBox(ShapeRun(string(runes[start:]), f, size, reg)))
	return out
}

func totalWidth(glyphs []Glyph) float64 {
	var w float64
	for _, g := range glyphs {
		w += g.Advance
	}
	return w
}
