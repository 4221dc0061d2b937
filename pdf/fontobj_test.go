package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandard14FontObject(t *testing.T) {
	d := Standard14FontObject("Times-Roman")
	require.Equal(t, "<< /Type /Font /Subtype /Type1 /BaseFont /Times-Roman /Encoding /WinAnsiEncoding >>", d.WriteString())
}

func TestCompositeFontObjectBuildsThreeTierDictionaries(t *testing.T) {
	desc := FontDescriptor{
		Ascent: 760, Descent: -240, CapHeight: 700,
		BBox:  [4]float64{-100, -250, 1100, 900},
		StemV: 80,
		Flags: 4,
	}
	widths := CIDWidthsArray([]CIDWidth{{CID: 36, Width: 600}, {CID: 37, Width: 611}})
	type0, descendant, descriptor := CompositeFontObject(
		"ABCDEF+MyFont", desc, widths,
		Ref{Num: 1}, Ref{Num: 2}, Ref{Num: 3}, Ref{Num: 4},
	)

	require.Contains(t, type0.WriteString(), "/Subtype /Type0")
	require.Contains(t, type0.WriteString(), "/Encoding /Identity-H")
	require.Contains(t, type0.WriteString(), "/ToUnicode 4 0 R")
	require.Contains(t, descendant.WriteString(), "/CIDToGIDMap /Identity")
	require.Contains(t, descendant.WriteString(), "/W [36 [600 611]]")
	require.Contains(t, descriptor.WriteString(), "/FontFile2 3 0 R")
	require.Contains(t, descriptor.WriteString(), "/Flags 4")
}

func TestCIDWidthsArrayGroupsConsecutiveCIDs(t *testing.T) {
	w := CIDWidthsArray([]CIDWidth{
		{CID: 10, Width: 500},
		{CID: 11, Width: 520},
		{CID: 40, Width: 700},
	})
	require.Equal(t, "[10 [500 520] 40 [700]]", w.WriteString())
}

func TestToUnicodeCMapContainsBfCharEntries(t *testing.T) {
	out := string(ToUnicodeCMap([]CIDToUnicodeEntry{
		{CID: 1, Rune: 'A'},
		{CID: 2, Rune: 'B'},
	}))
	require.True(t, strings.Contains(out, "beginbfchar"))
	require.True(t, strings.Contains(out, "<0001> <0041>"))
	require.True(t, strings.Contains(out, "<0002> <0042>"))
}
