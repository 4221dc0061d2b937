package atom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/style"
)

func testFont(t *testing.T) font.Font {
	t.Helper()
	f, ok := font.NewStandard14(font.TimesRoman)
	require.True(t, ok)
	return f
}

func TestBuildParagraphSplitsWordsAndSpaces(t *testing.T) {
	reg := font.NewRegistry()
	f := testFont(t)
	runs := []style.Run{
		{Text: "one two", Style: style.Style{Font: f, Size: 10}},
	}

	stream := BuildParagraph(runs, reg, true)

	var boxes, glues int
	for _, a := range stream {
		switch a.(type) {
		case Box:
			boxes++
		case Glue:
			glues++
		}
	}
	require.Equal(t, 2, boxes)
	require.GreaterOrEqual(t, glues, 1)
}

func TestBuildParagraphRaggedModeUsesStretchOnlyGlue(t *testing.T) {
	reg := font.NewRegistry()
	f := testFont(t)
	runs := []style.Run{
		{Text: "one two", Style: style.Style{Font: f, Size: 10}},
	}

	stream := BuildParagraph(runs, reg, false)

	var sawGlue bool
	for _, a := range stream {
		g, ok := a.(Glue)
		if !ok {
			continue
		}
		sawGlue = true
		require.Zero(t, g.Shrink)
		require.Greater(t, g.Stretch, g.W*100)
	}
	require.True(t, sawGlue)
}

func TestBuildParagraphEmitsForcedBreakOnNewline(t *testing.T) {
	reg := font.NewRegistry()
	f := testFont(t)
	runs := []style.Run{
		{Text: "a\nb", Style: style.Style{Font: f, Size: 10}},
	}

	stream := BuildParagraph(runs, reg, true)

	var sawForced bool
	for _, a := range stream {
		if p, ok := a.(Penalty); ok && math.IsInf(p.Cost, -1) {
			sawForced = true
		}
	}
	require.True(t, sawForced)
}

type stubHyphenator struct{}

func (stubHyphenator) Positions(word string) []int {
	if word == "hyphenation" {
		return []int{2, 5, 8}
	}
	return nil
}

func TestBuildWordInsertsDiscretionaryHyphensWhenEnabled(t *testing.T) {
	reg := font.NewRegistry()
	f := testFont(t)
	st := style.Style{Font: f, Size: 10, Hyphenate: style.HyphenOn, Hyphenator: stubHyphenator{}}
	runs := []style.Run{{Text: "hyphenation", Style: st}}

	stream := BuildParagraph(runs, reg, true)

	var hyphenPenalties int
	for _, a := range stream {
		if p, ok := a.(Penalty); ok && p.Flagged {
			hyphenPenalties++
		}
	}
	require.Equal(t, 3, hyphenPenalties)
}

func TestShapeRunReturnsOneGlyphPerRune(t *testing.T) {
	reg := font.NewRegistry()
	f := testFont(t)
	glyphs := ShapeRun("AV", f, 10, reg)
	require.Len(t, glyphs, 2)
}
