// Package match holds the pure text functions behind catalog matching:
// normalization, artist credit parsing and similarity scoring. Nothing in
// here touches the network.
package match

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes free text for comparison: every character that is
// not a letter, digit or whitespace is dropped, whitespace runs collapse to
// single spaces, and the result is lowercased. Empty input yields "".
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}
