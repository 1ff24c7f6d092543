package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Fold canonicalizes a string for comparison and storage of open tag sets:
// decompose, drop combining marks, lower-case, trim. Fold is idempotent, so
// already-folded values pass through unchanged.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the input
		folded = strings.ToLower(s)
	}
	return strings.TrimSpace(folded)
}

// Match reports whether the folded filter occurs inside the folded value.
// Used for the category and locality list filters.
func Match(value, filter string) bool {
	return strings.Contains(Fold(value), Fold(filter))
}
