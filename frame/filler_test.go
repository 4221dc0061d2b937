package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/layout"
)

func makeLines(n int) []layout.Line {
	lines := make([]layout.Line, n)
	for i := range lines {
		lines[i] = layout.Line{}
	}
	return lines
}

func TestFillPlacesParagraphsAcrossFrames(t *testing.T) {
	paragraphs := []Paragraph{
		{Lines: makeLines(10), Leading: 12},
	}
	frames := Fill(paragraphs, 50) // 50/12 = 4 lines per frame

	var total int
	for _, f := range frames {
		total += len(f.Lines)
	}
	require.Equal(t, 10, total)
	require.Greater(t, len(frames), 1)
}

func TestFillAvoidsOrphanFirstLine(t *testing.T) {
	// First paragraph nearly fills the frame, leaving room for exactly one
	// line of the second (3-line) paragraph — which must be pushed whole.
	paragraphs := []Paragraph{
		{Lines: makeLines(4), Leading: 10, AvoidOrphans: true}, // fills 40 of 54
		{Lines: makeLines(3), Leading: 10, AvoidOrphans: true},
	}
	frames := Fill(paragraphs, 54)

	require.Len(t, frames[0].Lines, 4)
	for _, pl := range frames[0].Lines {
		require.Equal(t, 0, pl.Paragraph)
	}
	// second paragraph must start together in frame 2, not split 1+2
	require.True(t, len(frames) >= 2)
	var secondParaInFrame2 int
	for _, pl := range frames[1].Lines {
		if pl.Paragraph == 1 {
			secondParaInFrame2++
		}
	}
	require.Equal(t, 3, secondParaInFrame2)
}

func TestFillAvoidsWidowLastLine(t *testing.T) {
	// Enough room for 3 of 4 lines — without widow control that would
	// leave 1 orphaned line to start the next frame; filler should pull
	// back to 2+2 instead.
	paragraphs := []Paragraph{
		{Lines: makeLines(4), Leading: 10, AvoidOrphans: true},
	}
	frames := Fill(paragraphs, 30)

	require.Len(t, frames, 2)
	require.Equal(t, 2, len(frames[0].Lines))
	require.Equal(t, 2, len(frames[1].Lines))
}

func TestFillSplitsFreelyWhenOrphanControlDisabled(t *testing.T) {
	paragraphs := []Paragraph{
		{Lines: makeLines(4), Leading: 10},
	}
	frames := Fill(paragraphs, 30)

	require.Len(t, frames, 2)
	require.Equal(t, 3, len(frames[0].Lines))
	require.Equal(t, 1, len(frames[1].Lines))
}

func TestFillNeverDropsLinesEvenWhenFrameIsTiny(t *testing.T) {
	paragraphs := []Paragraph{{Lines: makeLines(5), Leading: 100}}
	frames := Fill(paragraphs, 10) // capacity smaller than a single line's leading

	var total int
	for _, f := range frames {
		total += len(f.Lines)
	}
	require.Equal(t, 5, total)
}
