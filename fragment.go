package tagscrape

import (
	"strings"
	"unicode"
)

// MinTokens is the number of space-separated tokens a fragment needs to
// survive Clean.
const MinTokens = 3

// Split breaks text into fragments on every literal ".". The delimiter is
// dropped and empty pieces are kept, so "a. b." yields ["a", " b", ""].
func Split(text string) []string {
	return strings.Split(text, ".")
}

// CountTokens returns the number of pieces s splits into on a single space.
// Runs of spaces produce empty tokens, which are counted.
func CountTokens(s string) int {
	return strings.Count(s, " ") + 1
}

// isSpace reports whether r is whitespace. A stray byte order mark (U+FEFF)
// in page text counts as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Clean trims every fragment and drops the ones that are blank or shorter
// than MinTokens. Survivors keep their relative order. The input slice is
// reused for the result.
func Clean(fragments []string) []string {
	out := fragments[:0]
	for _, f := range fragments {
		f = strings.TrimFunc(f, isSpace)
		// A trimmed fragment is blank only if it is empty.
		if f == "" || CountTokens(f) < MinTokens {
			continue
		}
		out = append(out, f)
	}
	// Release references held past the new length.
	clear(fragments[len(out):])
	return out
}

