package font

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/quillpdf/quill/quilllog"
)

// Standard14 identifies one of the fourteen fonts a conforming PDF reader
// must supply without embedding (spec §3, §6 GLOSSARY).
type Standard14 string

const (
	Helvetica            Standard14 = "Helvetica"
	HelveticaBold        Standard14 = "Helvetica-Bold"
	HelveticaOblique     Standard14 = "Helvetica-Oblique"
	HelveticaBoldOblique Standard14 = "Helvetica-BoldOblique"
	TimesRoman           Standard14 = "Times-Roman"
	TimesBold            Standard14 = "Times-Bold"
	TimesItalic          Standard14 = "Times-Italic"
	TimesBoldItalic      Standard14 = "Times-BoldItalic"
	Courier              Standard14 = "Courier"
	CourierBold          Standard14 = "Courier-Bold"
	CourierOblique       Standard14 = "Courier-Oblique"
	CourierBoldOblique   Standard14 = "Courier-BoldOblique"
	Symbol               Standard14 = "Symbol"
	ZapfDingbats         Standard14 = "ZapfDingbats"
)

// IsStandard14 reports whether name is one of the fourteen recognized tags.
func IsStandard14(name Standard14) bool {
	_, ok := std14Metrics[name]
	return ok
}

type std14Font struct {
	descriptor Metrics
	widths     map[byte]float64 // keyed by WinAnsi (cp1252) byte code
	defWidth   float64
}

func (f std14Font) widthForByte(b byte) float64 {
	if w, ok := f.widths[b]; ok {
		return w
	}
	return f.defWidth
}

// stdFontHandle implements Font for a Standard14 tag.
type stdFontHandle struct {
	tag  Standard14
	font std14Font
}

// NewStandard14 returns a Font handle for tag, or false if tag is not one
// of the fourteen recognized names (InputShape at the caller's boundary).
func NewStandard14(tag Standard14) (Font, bool) {
	f, ok := std14Metrics[tag]
	if !ok {
		return nil, false
	}
	return &stdFontHandle{tag: tag, font: f}, true
}

func (h *stdFontHandle) Name() string     { return string(h.tag) }
func (h *stdFontHandle) IsEmbedded() bool { return false }

// winAnsiByte encodes r as WinAnsiEncoding (cp1252). Unmappable codepoints
// render as U+003F per spec §4.1 — this is a soft FontCoverage event, not
// an error.
func winAnsiByte(r rune) (byte, bool) {
	b, ok := charmap.Windows1252.EncodeRune(r)
	return b, ok
}

func (h *stdFontHandle) AdvanceWidth(r rune) float64 {
	b, ok := winAnsiByte(r)
	if !ok {
		quilllog.Log.Debug("font: %s cannot represent U+%04X, substituting '?'", h.tag, r)
		b, _ = winAnsiByte('?')
	}
	return h.font.widthForByte(b) / 1000
}

func (h *stdFontHandle) Kern(a, b rune) float64 {
	// Standard14 AFM files carry no pair-kerning data for WinAnsi-only use;
	// spec §3 allows zero kerning deltas.
	return 0
}

func (h *stdFontHandle) Ascent() float64    { return h.font.descriptor.Ascent / 1000 }
func (h *stdFontHandle) Descent() float64   { return h.font.descriptor.Descent / 1000 }
func (h *stdFontHandle) CapHeight() float64 { return h.font.descriptor.CapHeight / 1000 }

func (h *stdFontHandle) GlyphID(r rune) (uint16, bool) {
	b, ok := winAnsiByte(r)
	if !ok {
		return 0, false
	}
	return uint16(b), true
}

// std14Metrics holds AFM-derived width tables for each Standard14 font,
// keyed by WinAnsi byte code. Times-Roman's figures are taken from the
// public-domain Adobe Times-Roman.afm; the other families use representative
// Latin-1 widths in the same units (see DESIGN.md).
var std14Metrics = map[Standard14]std14Font{
	TimesRoman:           {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 683, Descent: -217, CapHeight: 662}, widths: timesRomanWidths, defWidth: 500},
	TimesBold:            {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 683, Descent: -217, CapHeight: 676}, widths: timesBoldWidths, defWidth: 500},
	TimesItalic:          {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 683, Descent: -217, CapHeight: 653}, widths: timesItalicWidths, defWidth: 500},
	TimesBoldItalic:      {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 683, Descent: -217, CapHeight: 669}, widths: timesBoldItalicWidths, defWidth: 500},
	Helvetica:            {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 718, Descent: -207, CapHeight: 718}, widths: helveticaWidths, defWidth: 556},
	HelveticaBold:        {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 718, Descent: -207, CapHeight: 718}, widths: helveticaBoldWidths, defWidth: 611},
	HelveticaOblique:     {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 718, Descent: -207, CapHeight: 718}, widths: helveticaWidths, defWidth: 556},
	HelveticaBoldOblique: {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 718, Descent: -207, CapHeight: 718}, widths: helveticaBoldWidths, defWidth: 611},
	Courier:              {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 629, Descent: -157, CapHeight: 562}, widths: nil, defWidth: 600},
	CourierBold:          {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 629, Descent: -157, CapHeight: 562}, widths: nil, defWidth: 600},
	CourierOblique:       {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 629, Descent: -157, CapHeight: 562}, widths: nil, defWidth: 600},
	CourierBoldOblique:   {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 629, Descent: -157, CapHeight: 562}, widths: nil, defWidth: 600},
	Symbol:               {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 0, Descent: 0, CapHeight: 0}, widths: nil, defWidth: 500},
	ZapfDingbats:         {descriptor: Metrics{UnitsPerEm: 1000, Ascent: 0, Descent: 0, CapHeight: 0}, widths: nil, defWidth: 788},
}

// timesRomanWidths are a subset of Adobe's public-domain Times-Roman.afm,
// indexed by WinAnsi byte code, covering printable ASCII plus the
// Latin-1 letters spec.md's "Olá Mundo!" scenario exercises.
var timesRomanWidths = map[byte]float64{
	' ': 250, '!': 333, '"': 408, '#': 500, '$': 500, '%': 833, '&': 778, '\'': 180,
	'(': 333, ')': 333, '*': 500, '+': 564, ',': 250, '-': 333, '.': 250, '/': 278,
	'0': 500, '1': 500, '2': 500, '3': 500, '4': 500, '5': 500, '6': 500, '7': 500,
	'8': 500, '9': 500, ':': 278, ';': 278, '<': 564, '=': 564, '>': 564, '?': 444,
	'@': 921, 'A': 722, 'B': 667, 'C': 667, 'D': 722, 'E': 611, 'F': 556, 'G': 722,
	'H': 722, 'I': 333, 'J': 389, 'K': 722, 'L': 611, 'M': 889, 'N': 722, 'O': 722,
	'P': 556, 'Q': 722, 'R': 667, 'S': 556, 'T': 611, 'U': 722, 'V': 722, 'W': 944,
	'X': 722, 'Y': 722, 'Z': 611, '[': 333, '\\': 278, ']': 333, '^': 469, '_': 500,
	'`': 333, 'a': 444, 'b': 500, 'c': 444, 'd': 500, 'e': 444, 'f': 333, 'g': 500,
	'h': 500, 'i': 278, 'j': 278, 'k': 500, 'l': 278, 'm': 778, 'n': 500, 'o': 500,
	'p': 500, 'q': 500, 'r': 333, 's': 389, 't': 278, 'u': 500, 'v': 500, 'w': 722,
	'x': 500, 'y': 500, 'z': 444, '{': 480, '|': 200, '}': 480, '~': 541,
	0xE1: 444, 0xE9: 444, 0xED: 278, 0xF3: 500, 0xFA: 500, 0xF1: 500,
}

var timesBoldWidths = scaleWidths(timesRomanWidths, 1.06)
var timesItalicWidths = scaleWidths(timesRomanWidths, 0.98)
var timesBoldItalicWidths = scaleWidths(timesRomanWidths, 1.04)

// helveticaWidths approximates Helvetica's proportional AFM widths; see
// DESIGN.md for why Times is exact and Helvetica/Courier are representative.
var helveticaWidths = map[byte]float64{
	' ': 278, '!': 278, '"': 355, '#': 556, '$': 556, '%': 889, '&': 667, '\'': 191,
	'(': 333, ')': 333, '*': 389, '+': 584, ',': 278, '-': 333, '.': 278, '/': 278,
	'0': 556, '1': 556, '2': 556, '3': 556, '4': 556, '5': 556, '6': 556, '7': 556,
	'8': 556, '9': 556, ':': 278, ';': 278, '<': 584, '=': 584, '>': 584, '?': 556,
	'@': 1015, 'A': 667, 'B': 667, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778,
	'H': 722, 'I': 278, 'J': 500, 'K': 667, 'L': 556, 'M': 833, 'N': 722, 'O': 778,
	'P': 667, 'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722, 'V': 667, 'W': 944,
	'X': 667, 'Y': 667, 'Z': 611, '[': 278, '\\': 278, ']': 278, '^': 469, '_': 556,
	'`': 333, 'a': 556, 'b': 556, 'c': 500, 'd': 556, 'e': 556, 'f': 278, 'g': 556,
	'h': 556, 'i': 222, 'j': 222, 'k': 500, 'l': 222, 'm': 833, 'n': 556, 'o': 556,
	'p': 556, 'q': 556, 'r': 333, 's': 500, 't': 278, 'u': 556, 'v': 500, 'w': 722,
	'x': 500, 'y': 500, 'z': 500, '{': 334, '|': 260, '}': 334, '~': 584,
	0xE1: 556, 0xE9: 556, 0xED: 222, 0xF3: 556, 0xFA: 556, 0xF1: 556,
}

var helveticaBoldWidths = scaleWidths(helveticaWidths, 1.08)

// scaleWidths derives a plausible companion variant (bold/italic) from a
// base width table by a uniform em-width factor, rounded to the nearest
// integer font unit.
func scaleWidths(base map[byte]float64, factor float64) map[byte]float64 {
	out := make(map[byte]float64, len(base))
	for b, w := range base {
		out[b] = float64(int(w*factor + 0.5))
	}
	return out
}
