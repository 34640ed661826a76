package route

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes runes and drops combining marks so accented
// characters slug to their base letter ("Škofja" -> "Skofja").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug converts a display name into a route-ID-safe form: diacritics
// stripped, lowercased, spaces and underscores replaced with hyphens, and
// every other character outside [a-z0-9-] dropped.
func Slug(name string) string {
	flat, _, err := transform.String(stripMarks, name)
	if err != nil {
		flat = name
	}

	flat = strings.ToLower(flat)

	var b strings.Builder
	b.Grow(len(flat))
	for _, r := range flat {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		}
	}
	return b.String()
}
