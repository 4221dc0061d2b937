package style

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/font"
)

func TestOverrideIsRightBiasedAndLeavesUnsetFieldsIntact(t *testing.T) {
	base := Default(mustFont(t))
	bold := base.Override(Bold(true))

	require.True(t, bold.IsBold())
	require.Equal(t, base.Size, bold.Size)
	require.Equal(t, base.Font, bold.Font)

	unbold := bold.Override(Bold(false))
	require.False(t, unbold.IsBold())
}

func TestOverrideColorAndHyphenation(t *testing.T) {
	base := Default(mustFont(t))
	red := base.Override(WithColor(RGB(1, 0, 0)))
	require.Equal(t, RGB(1, 0, 0), red.ResolvedColor())

	_, enabled := base.HyphenatesWith()
	require.False(t, enabled)

	on := base.Override(Style{Hyphenate: HyphenOn, Hyphenator: fakeHyphenator{}})
	h, enabled := on.HyphenatesWith()
	require.True(t, enabled)
	require.NotNil(t, h)

	// A descendant Style with HyphenInherit must not clobber the ancestor's
	// explicit HyphenOn.
	still := on.Override(Style{Size: 12})
	_, enabled = still.HyphenatesWith()
	require.True(t, enabled)
}

func TestFlattenResolvesNestedSpans(t *testing.T) {
	base := Default(mustFont(t))
	tree := Styled(Style{},
		Text("plain "),
		Styled(Bold(true), Text("bold"), Styled(WithColor(RGB(1, 0, 0)), Text(" red-bold"))),
	)

	runs := Flatten(base, tree)
	require.Len(t, runs, 3)

	require.Equal(t, "plain ", runs[0].Text)
	require.False(t, runs[0].Style.IsBold())

	require.Equal(t, "bold", runs[1].Text)
	require.True(t, runs[1].Style.IsBold())

	require.Equal(t, " red-bold", runs[2].Text)
	require.True(t, runs[2].Style.IsBold())
	require.Equal(t, RGB(1, 0, 0), runs[2].Style.ResolvedColor())
}

type fakeHyphenator struct{}

func (fakeHyphenator) Positions(word string) []int { return nil }

func mustFont(t *testing.T) font.Font {
	t.Helper()
	f, ok := font.NewStandard14(font.TimesRoman)
	require.True(t, ok)
	return f
}
