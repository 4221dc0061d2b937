package hyphen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnglishFallbackSplitsAtExplicitHyphen(t *testing.T) {
	f := EnglishFallback{}
	positions := f.Positions("well-known")
	require.Contains(t, positions, 5)
}

func TestEnglishFallbackSplitsBeforeCommonSuffix(t *testing.T) {
	f := EnglishFallback{}
	positions := f.Positions("information")
	require.NotEmpty(t, positions)
	for _, p := range positions {
		require.GreaterOrEqual(t, p, 2)
		require.LessOrEqual(t, p, len("information")-2)
	}
}

func TestEnglishFallbackRejectsShortWords(t *testing.T) {
	f := EnglishFallback{}
	require.Empty(t, f.Positions("cat"))
	require.Empty(t, f.Positions("a-b"))
}

func TestEnglishFallbackPositionsAreSortedAndUnique(t *testing.T) {
	f := EnglishFallback{}
	positions := f.Positions("self-determination")
	for i := 1; i < len(positions); i++ {
		require.Less(t, positions[i-1], positions[i])
	}
}
