package pdf

import "sort"

// Standard14FontObject builds a simple Type1 font dictionary for one of
// the fourteen base fonts — no descriptor or embedded program required.
func Standard14FontObject(baseFont string) *Dictionary {
	return NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("Type1")).
		Set("BaseFont", Name(baseFont)).
		Set("Encoding", Name("WinAnsiEncoding"))
}

// CIDToUnicodeEntry is one codepoint's contribution to a ToUnicode CMap.
type CIDToUnicodeEntry struct {
	CID  uint16
	Rune rune
}

// FontDescriptor carries the figures a /FontDescriptor dictionary needs,
// in 1000-unit glyph space.
type FontDescriptor struct {
	Ascent, Descent, CapHeight float64
	BBox                       [4]float64
	ItalicAngle                float64
	StemV                      float64
	Flags                      int
}

// CIDWidth is one CID's horizontal advance in 1000-unit text space.
type CIDWidth struct {
	CID   uint16
	Width float64
}

// CIDWidthsArray builds the descendant font's /W array, grouping runs of
// consecutive CIDs into the "c [w1 w2 ...]" form.
func CIDWidthsArray(widths []CIDWidth) *Array {
	sort.Slice(widths, func(i, j int) bool { return widths[i].CID < widths[j].CID })
	out := NewArray()
	i := 0
	for i < len(widths) {
		j := i + 1
		for j < len(widths) && widths[j].CID == widths[j-1].CID+1 {
			j++
		}
		ws := NewArray()
		for _, w := range widths[i:j] {
			ws.Append(Real(w.Width))
		}
		out.Append(Integer(widths[i].CID))
		out.Append(ws)
		i = j
	}
	return out
}

// CompositeFontObject builds the Type0/CIDFontType2/Identity-H dictionary
// tree for an embedded TrueType subset: the Type0 wrapper, its descendant
// CIDFontType2 dictionary, and a FontDescriptor referencing the FontFile2
// stream — the same three-tier shape the pack's composite-font writer
// uses. CIDs are the font's glyph ids (subsetting keeps ids stable), so
// CIDToGIDMap is /Identity. Every ref passed in must already be reserved
// with Writer.NewRef.
func CompositeFontObject(
	baseFont string,
	desc FontDescriptor,
	widths *Array,
	descriptorRef, descendantRef, fontFileRef, toUnicodeRef Ref,
) (type0 *Dictionary, descendant *Dictionary, descriptor *Dictionary) {
	type0 = NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("Type0")).
		Set("BaseFont", Name(baseFont)).
		Set("Encoding", Name("Identity-H")).
		Set("DescendantFonts", NewArray(descendantRef)).
		Set("ToUnicode", toUnicodeRef)

	descendant = NewDict().
		Set("Type", Name("Font")).
		Set("Subtype", Name("CIDFontType2")).
		Set("BaseFont", Name(baseFont)).
		Set("CIDSystemInfo", NewDict().
			Set("Registry", NewString("Adobe")).
			Set("Ordering", NewString("Identity")).
			Set("Supplement", Integer(0))).
		Set("FontDescriptor", descriptorRef).
		Set("DW", Integer(1000)).
		Set("CIDToGIDMap", Name("Identity"))
	if widths != nil && widths.Len() > 0 {
		descendant.Set("W", widths)
	}

	descriptor = NewDict().
		Set("Type", Name("FontDescriptor")).
		Set("FontName", Name(baseFont)).
		Set("Flags", Integer(desc.Flags)).
		Set("FontBBox", NewArray(Real(desc.BBox[0]), Real(desc.BBox[1]), Real(desc.BBox[2]), Real(desc.BBox[3]))).
		Set("ItalicAngle", Real(desc.ItalicAngle)).
		Set("Ascent", Real(desc.Ascent)).
		Set("Descent", Real(desc.Descent)).
		Set("CapHeight", Real(desc.CapHeight)).
		Set("StemV", Real(desc.StemV)).
		Set("FontFile2", fontFileRef)

	return type0, descendant, descriptor
}

// ToUnicodeCMap renders a minimal bfchar CMap stream mapping each CID to
// its source codepoint, for copy/search/accessibility support (spec §4.5).
func ToUnicodeCMap(entries []CIDToUnicodeEntry) []byte {
	sort.Slice(entries, func(i, j int) bool { return entries[i].CID < entries[j].CID })

	var b []byte
	b = append(b, "/CIDInit /ProcSet findresource begin\n"...)
	b = append(b, "12 dict begin\nbegincmap\n"...)
	b = append(b, "/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n"...)
	b = append(b, "/CMapName /Adobe-Identity-UCS def\n"...)
	b = append(b, "1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n"...)
	b = append(b, []byte(bfcharSection(entries))...)
	b = append(b, "endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n"...)
	return b
}

// bfcharSection renders entries as one or more "beginbfchar"/"endbfchar"
// blocks, chunked at 100 pairs per block per the CMap spec's limit on
// entries within a single block.
func bfcharSection(entries []CIDToUnicodeEntry) string {
	var out string
	for start := 0; start < len(entries); start += 100 {
		end := start + 100
		if end > len(entries) {
			end = len(entries)
		}
		chunk := entries[start:end]
		out += Integer(len(chunk)).WriteString() + " beginbfchar\n"
		for _, e := range chunk {
			out += hex4(e.CID) + " " + hex4Rune(e.Rune) + "\n"
		}
		out += "endbfchar\n"
	}
	return out
}

func hex4(v uint16) string {
	const hexDigits = "0123456789abcdef"
	return "<" + string([]byte{
		hexDigits[(v>>12)&0xF], hexDigits[(v>>8)&0xF], hexDigits[(v>>4)&0xF], hexDigits[v&0xF],
	}) + ">"
}

func hex4Rune(r rune) string {
	v := uint32(r)
	const hexDigits = "0123456789abcdef"
	if v > 0xFFFF {
		v = 0xFFFD // replacement character; astral ToUnicode mapping is a non-goal
	}
	return "<" + string([]byte{
		hexDigits[(v>>12)&0xF], hexDigits[(v>>8)&0xF], hexDigits[(v>>4)&0xF], hexDigits[v&0xF],
	}) + ">"
}
