// Package match implements the fuzzy name-matching engine used to resolve
// free-text employee names against HR records. All functions are pure and
// hold no state across calls.
package match

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a name for comparison: lowercase, trim, strip
// everything that is not a letter, digit, underscore, or whitespace, and
// collapse whitespace runs to a single space. Idempotent.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
