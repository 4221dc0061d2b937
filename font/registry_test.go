package font

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryAssignsStableNamesAndTracksUsedRunes(t *testing.T) {
	reg := NewRegistry()
	times, ok := NewStandard14(TimesRoman)
	require.True(t, ok)
	helv, ok := NewStandard14(Helvetica)
	require.True(t, ok)

	n1 := reg.Use(times, 'H')
	n2 := reg.Use(times, 'i')
	n3 := reg.Use(helv, 'x')
	n1Again := reg.Use(times, 'H')

	require.Equal(t, n1, n2)
	require.Equal(t, n1, n1Again)
	require.NotEqual(t, n1, n3)
	require.Equal(t, "F1", n1)
	require.Equal(t, "F2", n3)

	entries := reg.Freeze()
	require.Len(t, entries, 2)
	require.Equal(t, "F1", entries[0].Name)
	require.Equal(t, []rune{'H', 'i'}, entries[0].Runes)
	require.Equal(t, "F2", entries[1].Name)
	require.Equal(t, []rune{'x'}, entries[1].Runes)
}

func TestRegistryUseAfterFreezePanics(t *testing.T) {
	reg := NewRegistry()
	f, _ := NewStandard14(Courier)
	reg.Use(f, 'a')
	reg.Freeze()

	require.Panics(t, func() {
		reg.Use(f, 'b')
	})
}

func TestSubsetTagIsDeterministic(t *testing.T) {
	a := subsetTag([]uint16{0, 36, 37, 38})
	b := subsetTag([]uint16{0, 36, 37, 38})
	c := subsetTag([]uint16{0, 36, 37, 39})

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 6)
	for _, r := range a {
		require.True(t, r >= 'A' && r <= 'Z')
	}
}
