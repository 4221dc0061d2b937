package font

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"sort"

	"github.com/unidoc/unitype"

	"github.com/quillpdf/quill/font/sfnt"
	"github.com/quillpdf/quill/quillerr"
	"github.com/quillpdf/quill/quilllog"
)

// Embedded is a Font handle backed by a caller-supplied TrueType program.
// Metrics are served from quill's own sfnt table reader; the eventual
// glyph-subset rewrite (loca/glyf/cmap/hmtx) is delegated to unitype, the
// same division of labor the pack's PDF-library teacher uses.
type Embedded struct {
	raw    []byte
	tables *sfnt.Font
	name   string
}

// ParseTrueType parses data as a TrueType font for use as an embedded font
// handle. The raw bytes are retained for subsetting at serialization time.
func ParseTrueType(data []byte) (*Embedded, error) {
	tables, err := sfnt.Parse(data)
	if err != nil {
		quilllog.Log.Debug("font: failed to parse embedded TrueType: %v", err)
		return nil, err
	}
	name := tables.PostScriptName
	if name == "" {
		name = "EmbeddedFont"
	}
	return &Embedded{raw: data, tables: tables, name: name}, nil
}

func (e *Embedded) Name() string     { return e.name }
func (e *Embedded) IsEmbedded() bool { return true }

func (e *Embedded) metricsOf() Metrics {
	return Metrics{
		UnitsPerEm: float64(e.tables.UnitsPerEm),
		Ascent:     float64(e.tables.Ascent),
		Descent:    float64(e.tables.Descent),
		CapHeight:  float64(e.tables.CapHeight),
	}
}

func (e *Embedded) AdvanceWidth(r rune) float64 {
	gid, ok := e.tables.GlyphID(r)
	if !ok {
		quilllog.Log.Debug("font: %s has no glyph for U+%04X, using .notdef", e.name, r)
		return 0
	}
	return e.metricsOf().Scale(float64(e.tables.AdvanceWidth(gid)))
}

func (e *Embedded) Kern(a, b rune) float64 {
	ga, ok1 := e.tables.GlyphID(a)
	gb, ok2 := e.tables.GlyphID(b)
	if !ok1 || !ok2 {
		return 0
	}
	return e.metricsOf().Scale(float64(e.tables.Kern(ga, gb)))
}

func (e *Embedded) Ascent() float64    { return e.metricsOf().Scale(float64(e.tables.Ascent)) }
func (e *Embedded) Descent() float64   { return e.metricsOf().Scale(float64(e.tables.Descent)) }
func (e *Embedded) CapHeight() float64 { return e.metricsOf().Scale(float64(e.tables.CapHeight)) }

func (e *Embedded) GlyphID(r rune) (uint16, bool) { return e.tables.GlyphID(r) }

// Subset is the serialization-time product of font §4.5: a subset
// TrueType program plus the CID mapping and naming tag the writer needs.
// unitype's subsetting maintains glyph ids (unused glyphs become empty
// entries with their loca offsets reused), so CIDs under Identity-H are
// the original glyph ids and CIDToGIDMap stays /Identity — the same
// arrangement the teacher's composite-font writer produces.
type Subset struct {
	Data     []byte
	CIDOf    map[rune]uint16 // codepoint -> CID (= glyph id), for /ToUnicode and /W
	UsedGIDs []uint16        // sorted, .notdef included
	Tag      string          // six upper-case letters, deterministic
}

// BuildSubset produces the subset TrueType program covering exactly the
// codepoints in used (plus .notdef), per spec §4.5: only used glyphs and
// their composite dependency closure survive, and the tag is a stable
// hash of the sorted used-glyph set.
func (e *Embedded) BuildSubset(used map[rune]struct{}) (*Subset, error) {
	runes := make([]rune, 0, len(used))
	for r := range used {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	srcFont, err := unitype.Parse(bytes.NewReader(e.raw))
	if err != nil {
		return nil, fmt.Errorf("font: unitype parse failed: %w", quillerr.ErrFontParse)
	}
	subsetFont, err := srcFont.SubsetKeepRunes(runes)
	if err != nil {
		return nil, fmt.Errorf("font: unitype subset failed: %w", quillerr.ErrFontParse)
	}
	var buf bytes.Buffer
	if err := subsetFont.Write(&buf); err != nil {
		return nil, fmt.Errorf("font: unitype write failed: %w", quillerr.ErrFontParse)
	}

	cidOf := make(map[rune]uint16, len(runes))
	gids := []uint16{0}
	for _, r := range runes {
		gid, ok := e.tables.GlyphID(r)
		if !ok {
			continue // renders as .notdef, CID 0
		}
		cidOf[r] = gid
		gids = append(gids, gid)
	}
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })

	return &Subset{
		Data:     buf.Bytes(),
		CIDOf:    cidOf,
		UsedGIDs: gids,
		Tag:      subsetTag(gids),
	}, nil
}

// subsetTag derives a deterministic six-upper-letter prefix from a stable
// hash of the sorted used-glyph set (spec §4.5), replacing the teacher's
// rand-based tag (which would break determinism, P4).
func subsetTag(sortedGIDs []uint16) string {
	h := sha1.New()
	for _, g := range sortedGIDs {
		fmt.Fprintf(h, "%x,", g)
	}
	sum := h.Sum(nil)
	letters := make([]byte, 6)
	for i := 0; i < 6; i++ {
		letters[i] = 'A' + sum[i]%26
	}
	return string(letters)
}

// MakeSubsetName prefixes name with tag per spec §4.5 ("BaseFont prefixed
// with a six-upper-letter tag") and the PDF convention "TAG+Name".
func MakeSubsetName(name, tag string) string {
	return tag + "+" + name
}

// DescriptorData carries the /FontDescriptor figures for an embedded font,
// in 1000-unit glyph space.
type DescriptorData struct {
	Ascent, Descent, CapHeight float64
	BBox                       [4]float64
	ItalicAngle                float64
	StemV                      float64
	Flags                      int
}

// Symbolic flag: a subset cmap is never one of the standard Latin sets, so
// composite embedded fonts are marked symbolic the way the teacher does.
const flagSymbolic = 1 << 2

// Descriptor returns the descriptor figures for the full font; subsetting
// never changes them since kept glyphs retain their original outlines.
func (e *Embedded) Descriptor() DescriptorData {
	s := 1000.0
	if e.tables.UnitsPerEm != 0 {
		s = 1000 / float64(e.tables.UnitsPerEm)
	}
	return DescriptorData{
		Ascent:    float64(e.tables.Ascent) * s,
		Descent:   float64(e.tables.Descent) * s,
		CapHeight: float64(e.tables.CapHeight) * s,
		BBox: [4]float64{
			float64(e.tables.XMin) * s,
			float64(e.tables.YMin) * s,
			float64(e.tables.XMax) * s,
			float64(e.tables.YMax) * s,
		},
		StemV: 80,
		Flags: flagSymbolic,
	}
}
