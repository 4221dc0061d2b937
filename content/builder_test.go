package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderEmitsExpectedOperators(t *testing.T) {
	b := NewBuilder()
	b.PushState().
		Translate(10, 20).
		SetFillColor(1, 0, 0).
		Rect(0, 0, 100, 50).
		Fill().
		PopState()

	out := string(b.Bytes())
	require.True(t, strings.Contains(out, "1 0 0 1 10 20 cm\n"))
	require.True(t, strings.Contains(out, "1 0 0 rg\n"))
	require.True(t, strings.Contains(out, "0 0 100 50 re\n"))
	require.True(t, strings.HasPrefix(out, "q\n"))
	require.True(t, strings.HasSuffix(out, "Q\n"))
}

func TestShowTextLiteralEscapesParens(t *testing.T) {
	b := NewBuilder()
	b.BeginText().SetFont("F1", 12).ShowTextLiteral([]byte("a(b)c")).EndText()

	out := string(b.Bytes())
	require.Contains(t, out, `(a\(b\)c) Tj`)
}

func TestShowTextHexEncodesTwoBytesPerCode(t *testing.T) {
	b := NewBuilder()
	b.ShowTextHex([]uint16{0x0041, 0x00FF})
	out := string(b.Bytes())
	require.Contains(t, out, "<004100ff> Tj")
}
