// Package hyphen supplies the hyphenation capability a style.Style can opt
// into: a Provider interface plus a dependency-free English heuristic.
//
// A real deployment may prefer a Liang pattern-file hyphenator (the kind
// TeX-derived typesetting tools such as speedata's pipeline use) for
// better break points in long documents. quill does not hard-wire one:
// implement Provider against whatever pattern data your document style
// calls for and pass it through style.Style.Hyphenator.
package hyphen

import "strings"

// Provider is the hyphenation capability style.Hyphenator expects.
type Provider interface {
	// Positions returns the rune offsets within word at which a
	// discretionary hyphen may be inserted: p splits word into its first p
	// runes and the rest.
	Positions(word string) []int
}

// EnglishFallback is a small heuristic hyphenator requiring no pattern
// data: it allows a break at an explicit '-' in the word, and before a
// handful of common English suffixes, always keeping at least two
// leading and three trailing characters unbroken (spec §4.2's stated
// minimum-fragment rule).
type EnglishFallback struct{}

var commonSuffixes = []string{"tion", "sion", "ing", "ed", "ly", "ment", "ness", "able", "ible"}

// Positions implements Provider.
func (EnglishFallback) Positions(word string) []int {
	runes := []rune(word)
	n := len(runes)
	if n < 5 {
		return nil
	}

	var positions []int
	for i, r := range runes {
		if r == '-' && i >= 2 && i <= n-3 {
			positions = append(positions, i+1)
		}
	}

	lower := strings.ToLower(word)
	for _, suf := range commonSuffixes {
		idx := strings.LastIndex(lower, suf)
		if idx < 0 {
			continue
		}
		// byte offset -> rune index, for words with multibyte letters
		positions = append(positions, len([]rune(lower[:idx])))
	}

	return dedupeSorted(positions, n)
}

// dedupeSorted drops split points violating the minimum two leading and
// three trailing characters, removes duplicates, and sorts.
func dedupeSorted(positions []int, n int) []int {
	seen := make(map[int]struct{}, len(positions))
	var out []int
	for _, p := range positions {
		if p < 2 || p > n-3 {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	// insertion sort; the input list is short and rarely unsorted
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
