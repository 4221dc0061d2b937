// Package sfnt parses the TrueType tables quill's shaper needs metrics
// from: head, hhea, maxp, cmap (formats 0 and 4), hmtx and kern. It does
// not parse glyf/loca outlines — glyph-outline rewriting for subsetting is
// delegated to github.com/unidoc/unitype (see font.Embedded), matching how
// the pack's PDF-library teacher divides the same work between a
// hand-rolled metrics parser and an external subsetting library.
//
// Ported from the table-walking approach of the classic Go x/image/font/sfnt
// family of parsers: a thin big-endian cursor over named table records.
package sfnt

import (
	"encoding/binary"
	"fmt"

	"github.com/quillpdf/quill/quillerr"
)

// Font holds the parsed metrics tables of one TrueType font.
type Font struct {
	UnitsPerEm             uint16
	Ascent                 int16
	Descent                int16
	CapHeight              int16
	XMin, YMin, XMax, YMax int16 // head bounding box, font units
	NumGlyphs              int
	PostScriptName         string

	numHMetrics int
	hmtx        []byte
	cmap        map[rune]uint16
	kernPairs   []kernPair // sorted by (left<<16|right)
}

type kernPair struct {
	left, right uint16
	value       int16
}

type tableRecord struct {
	offset, length uint32
}

// Parse reads the metrics tables out of raw TrueType font bytes.
func Parse(data []byte) (*Font, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("sfnt: file too short: %w", quillerr.ErrFontParse)
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if len(data) < 12+16*numTables {
		return nil, fmt.Errorf("sfnt: truncated table directory: %w", quillerr.ErrFontParse)
	}

	tables := map[string]tableRecord{}
	for i := 0; i < numTables; i++ {
		rec := data[12+16*i : 12+16*i+16]
		tag := string(rec[0:4])
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])
		tables[tag] = tableRecord{offset: offset, length: length}
	}

	table := func(tag string) ([]byte, error) {
		rec, ok := tables[tag]
		if !ok {
			return nil, fmt.Errorf("sfnt: missing required table %q: %w", tag, quillerr.ErrFontParse)
		}
		end := uint64(rec.offset) + uint64(rec.length)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("sfnt: table %q out of bounds: %w", tag, quillerr.ErrFontParse)
		}
		return data[rec.offset:end], nil
	}

	head, err := table("head")
	if err != nil {
		return nil, err
	}
	if len(head) < 54 {
		return nil, fmt.Errorf("sfnt: head table too short: %w", quillerr.ErrFontParse)
	}
	f := &Font{
		UnitsPerEm: binary.BigEndian.Uint16(head[18:20]),
		XMin:       int16(binary.BigEndian.Uint16(head[36:38])),
		YMin:       int16(binary.BigEndian.Uint16(head[38:40])),
		XMax:       int16(binary.BigEndian.Uint16(head[40:42])),
		YMax:       int16(binary.BigEndian.Uint16(head[42:44])),
	}

	hhea, err := table("hhea")
	if err != nil {
		return nil, err
	}
	if len(hhea) < 36 {
		return nil, fmt.Errorf("sfnt: hhea table too short: %w", quillerr.ErrFontParse)
	}
	f.Ascent = int16(binary.BigEndian.Uint16(hhea[4:6]))
	f.Descent = int16(binary.BigEndian.Uint16(hhea[6:8]))
	f.numHMetrics = int(binary.BigEndian.Uint16(hhea[34:36]))

	maxp, err := table("maxp")
	if err != nil {
		return nil, err
	}
	if len(maxp) < 6 {
		return nil, fmt.Errorf("sfnt: maxp table too short: %w", quillerr.ErrFontParse)
	}
	f.NumGlyphs = int(binary.BigEndian.Uint16(maxp[4:6]))
	f.CapHeight = f.Ascent // refined below if OS/2 is present

	if os2, err := table("OS/2"); err == nil && len(os2) >= 90 {
		if ch := int16(binary.BigEndian.Uint16(os2[88:90])); ch != 0 {
			f.CapHeight = ch
		}
	}

	hmtx, err := table("hmtx")
	if err != nil {
		return nil, err
	}
	if len(hmtx) < 4*f.numHMetrics {
		return nil, fmt.Errorf("sfnt: hmtx table too short: %w", quillerr.ErrFontParse)
	}
	f.hmtx = hmtx

	cmapTable, err := table("cmap")
	if err != nil {
		return nil, err
	}
	f.cmap, err = parseCmap(cmapTable)
	if err != nil {
		return nil, err
	}

	if kernTable, err := table("kern"); err == nil {
		f.kernPairs = parseKern(kernTable)
	}

	if name, err := table("name"); err == nil {
		f.PostScriptName = parsePostScriptName(name)
	}

	return f, nil
}

// AdvanceWidth returns the glyph's advance width in font units.
func (f *Font) AdvanceWidth(gid uint16) uint16 {
	g := int(gid)
	if f.numHMetrics == 0 {
		return 0
	}
	if g >= f.numHMetrics {
		g = f.numHMetrics - 1
	}
	return binary.BigEndian.Uint16(f.hmtx[4*g:])
}

// GlyphID maps a rune to a glyph id using the parsed cmap, ok=false if absent.
func (f *Font) GlyphID(r rune) (uint16, bool) {
	gid, ok := f.cmap[r]
	return gid, ok
}

// Kern returns the kerning adjustment in font units between two glyph ids.
func (f *Font) Kern(left, right uint16) int16 {
	if len(f.kernPairs) == 0 {
		return 0
	}
	lo, hi := 0, len(f.kernPairs)
	for lo < hi {
		mid := (lo + hi) / 2
		p := f.kernPairs[mid]
		switch {
		case p.left < left || (p.left == left && p.right < right):
			lo = mid + 1
		case p.left > left || (p.left == left && p.right > right):
			hi = mid
		default:
			return p.value
		}
	}
	return 0
}

func parseCmap(data []byte) (map[rune]uint16, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("sfnt: cmap table too short: %w", quillerr.ErrFontParse)
	}
	numTables := int(binary.BigEndian.Uint16(data[2:4]))
	var best uint32
	bestScore := -1
	for i := 0; i < numTables; i++ {
		rec := data[4+8*i:]
		if len(rec) < 8 {
			break
		}
		platform := binary.BigEndian.Uint16(rec[0:2])
		encoding := binary.BigEndian.Uint16(rec[2:4])
		offset := binary.BigEndian.Uint32(rec[4:8])
		score := 0
		switch {
		case platform == 3 && encoding == 1: // Windows Unicode BMP
			score = 3
		case platform == 0: // Unicode
			score = 2
		case platform == 3 && encoding == 0: // Windows Symbol
			score = 1
		}
		if score > bestScore {
			bestScore = score
			best = offset
		}
	}
	if bestScore < 0 || int(best) >= len(data) {
		return nil, fmt.Errorf("sfnt: no usable cmap subtable: %w", quillerr.ErrFontParse)
	}
	sub := data[best:]
	if len(sub) < 2 {
		return nil, fmt.Errorf("sfnt: cmap subtable too short: %w", quillerr.ErrFontParse)
	}
	format := binary.BigEndian.Uint16(sub[0:2])
	switch format {
	case 4:
		return parseCmapFormat4(sub)
	case 0:
		return parseCmapFormat0(sub)
	default:
		return nil, fmt.Errorf("sfnt: unsupported cmap format %d: %w", format, quillerr.ErrFontParse)
	}
}

func parseCmapFormat0(sub []byte) (map[rune]uint16, error) {
	if len(sub) < 262 {
		return nil, fmt.Errorf("sfnt: cmap format 0 too short: %w", quillerr.ErrFontParse)
	}
	out := make(map[rune]uint16)
	for c := 0; c < 256; c++ {
		gid := sub[6+c]
		if gid != 0 {
			out[rune(c)] = uint16(gid)
		}
	}
	return out, nil
}

func parseCmapFormat4(sub []byte) (map[rune]uint16, error) {
	if len(sub) < 14 {
		return nil, fmt.Errorf("sfnt: cmap format 4 too short: %w", quillerr.ErrFontParse)
	}
	segCountX2 := int(binary.BigEndian.Uint16(sub[6:8]))
	segCount := segCountX2 / 2
	endBase := 14
	startBase := endBase + segCountX2 + 2 // skip reservedPad
	deltaBase := startBase + segCountX2
	rangeBase := deltaBase + segCountX2
	if rangeBase+segCountX2 > len(sub) {
		return nil, fmt.Errorf("sfnt: cmap format 4 truncated: %w", quillerr.ErrFontParse)
	}

	out := make(map[rune]uint16)
	for s := 0; s < segCount; s++ {
		end := binary.BigEndian.Uint16(sub[endBase+2*s:])
		start := binary.BigEndian.Uint16(sub[startBase+2*s:])
		delta := int16(binary.BigEndian.Uint16(sub[deltaBase+2*s:]))
		rangeOffset := binary.BigEndian.Uint16(sub[rangeBase+2*s:])
		if start == 0xFFFF && end == 0xFFFF {
			continue
		}
		for c := uint32(start); c <= uint32(end) && c != 0xFFFF+1; c++ {
			var gid uint16
			if rangeOffset == 0 {
				gid = uint16(int32(c) + int32(delta))
			} else {
				idx := rangeBase + 2*s + int(rangeOffset) + 2*(int(c)-int(start))
				if idx+2 > len(sub) {
					continue
				}
				g := binary.BigEndian.Uint16(sub[idx:])
				if g == 0 {
					continue
				}
				gid = uint16(int32(g) + int32(delta))
			}
			if gid != 0 {
				out[rune(c)] = gid
			}
		}
	}
	return out, nil
}

// parseKern reads the classic Microsoft-compatible format-0 'kern' subtable
// (version 0, one horizontal subtable), matching what most TrueType fonts
// targeting Windows compatibility ship.
func parseKern(data []byte) []kernPair {
	if len(data) < 18 {
		return nil
	}
	if binary.BigEndian.Uint16(data[0:2]) != 0 {
		return nil // unsupported "new" Apple kern version
	}
	nTables := binary.BigEndian.Uint16(data[2:4])
	if nTables == 0 {
		return nil
	}
	coverage := binary.BigEndian.Uint16(data[8:10])
	if coverage&0x1 == 0 {
		return nil // not horizontal
	}
	format := coverage >> 8
	if format != 0 {
		return nil
	}
	nPairs := int(binary.BigEndian.Uint16(data[10:12]))
	if 18+6*nPairs > len(data) {
		return nil
	}
	pairs := make([]kernPair, 0, nPairs)
	for i := 0; i < nPairs; i++ {
		p := data[18+6*i:]
		pairs = append(pairs, kernPair{
			left:  binary.BigEndian.Uint16(p[0:2]),
			right: binary.BigEndian.Uint16(p[2:4]),
			value: int16(binary.BigEndian.Uint16(p[4:6])),
		})
	}
	return pairs
}

// parsePostScriptName extracts name id 6 (PostScript name): a Macintosh
// platform record is returned as soon as one is found; otherwise the last
// name-6 record wins (Windows records decoded from UTF-16BE).
func parsePostScriptName(data []byte) string {
	if len(data) < 6 {
		return ""
	}
	count := int(binary.BigEndian.Uint16(data[2:4]))
	stringOffset := int(binary.BigEndian.Uint16(data[4:6]))
	var fallback string
	for i := 0; i < count; i++ {
		rec := data[6+12*i:]
		if len(rec) < 12 {
			break
		}
		platform := binary.BigEndian.Uint16(rec[0:2])
		nameID := binary.BigEndian.Uint16(rec[6:8])
		length := int(binary.BigEndian.Uint16(rec[8:10]))
		offset := int(binary.BigEndian.Uint16(rec[10:12]))
		if nameID != 6 {
			continue
		}
		start := stringOffset + offset
		if start < 0 || start+length > len(data) {
			continue
		}
		raw := data[start : start+length]
		var s string
		if platform == 3 { // Windows: UTF-16BE
			s = utf16BEToASCII(raw)
		} else {
			s = string(raw)
		}
		if platform == 1 { // Macintosh Roman: prefer it outright
			return s
		}
		fallback = s
	}
	return fallback
}

func utf16BEToASCII(b []byte) string {
	out := make([]byte, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		c := uint16(b[i])<<8 | uint16(b[i+1])
		if c < 0x80 {
			out = append(out, byte(c))
		}
	}
	return string(out)
}
