package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/atom"
	"github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/style"
)

func words(t *testing.T, text string, width float64) []atom.Atom {
	t.Helper()
	f, ok := font.NewStandard14(font.TimesRoman)
	require.True(t, ok)
	reg := font.NewRegistry()
	runs := []style.Run{{Text: text, Style: style.Style{Font: f, Size: 12}}}
	stream := atom.BuildParagraph(runs, reg, true)
	stream = append(stream, atom.ParagraphEnd()...)
	return stream
}

func TestBreakProducesNoOverfullLinesWhenFeasible(t *testing.T) {
	stream := words(t, "the quick brown fox jumps over the lazy dog again and again", 200)
	lines := Break(stream, 200)
	require.NotEmpty(t, lines)
	for _, l := range lines {
		require.False(t, l.Overfull, "unexpected overfull line: %+v", l)
	}
}

func TestBreakIsDeterministicAcrossRuns(t *testing.T) {
	stream1 := words(t, "the quick brown fox jumps over the lazy dog", 150)
	stream2 := words(t, "the quick brown fox jumps over the lazy dog", 150)

	lines1 := Break(stream1, 150)
	lines2 := Break(stream2, 150)

	require.Equal(t, len(lines1), len(lines2))
	for i := range lines1 {
		require.Equal(t, len(lines1[i].Atoms), len(lines2[i].Atoms))
		require.InDelta(t, lines1[i].Ratio, lines2[i].Ratio, 1e-9)
	}
}

func TestBreakHonorsForcedLineBreak(t *testing.T) {
	stream := words(t, "first line\nsecond line", 500)
	lines := Break(stream, 500)
	require.Len(t, lines, 2)
}

func TestGreedyNeverLeavesUnplacedContent(t *testing.T) {
	stream := words(t, "a b c d e f g h i j k l m n o p", 40)
	lines := Greedy(stream, 40)
	require.NotEmpty(t, lines)

	var total int
	for _, l := range lines {
		for _, a := range l.Atoms {
			if _, ok := a.(atom.Box); ok {
				total++
			}
		}
	}
	require.Equal(t, 16, total)
}

// pathDemerits recomputes a break sequence's cumulative demerits from the
// laid lines' ratios, the same objective the dynamic program minimizes.
// The sample text carries no hyphen penalties, so the per-break penalty
// cost is zero everywhere but the terminator, which both breakers pay
// identically.
func pathDemerits(lines []Line) float64 {
	var total float64
	prevFit := 2
	for _, l := range lines {
		fit := fitnessClass(l.Ratio)
		total += demeritsFor(badness(l.Ratio), 0, prevFit, fit, false, false)
		prevFit = fit
	}
	return total
}

func TestBreakNeverCostsMoreThanGreedy(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog while the cold rain keeps falling on the old tin roof"
	for _, width := range []float64{120, 160, 200, 260} {
		optimal := Break(words(t, text, width), width)
		greedy := Greedy(words(t, text, width), width)
		require.LessOrEqual(t, pathDemerits(optimal), pathDemerits(greedy),
			"width %g: optimal path must not cost more than greedy", width)
	}
}

func TestVeryNarrowWidthFallsBackWithoutPanicking(t *testing.T) {
	stream := words(t, "supercalifragilisticexpialidocious is one long word", 5)
	require.NotPanics(t, func() {
		Break(stream, 5)
	})
}
