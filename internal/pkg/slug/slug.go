// Package slug derives URL-safe identifiers from human-readable titles.
package slug

import (
	"strings"
	"unicode"
)

// stripSet holds characters removed outright before hyphenation. The
// comma is stripped too so "Hello, World!" yields "hello-world".
const stripSet = "*+~.()'\"!:@#%^&${}<>?/|,"

// Slugify lowercases s, strips punctuation and collapses runs of
// whitespace and hyphens into a single hyphen. It is idempotent:
// Slugify(Slugify(s)) == Slugify(s). Uniqueness is not enforced.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(stripSet, r) {
			continue
		}
		b.WriteRune(r)
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	return strings.Join(parts, "-")
}
