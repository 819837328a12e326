package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// Slugify turns a title into a URL slug: accents are folded to ASCII, other
// non-ASCII runes dropped, the result lower-cased, punctuation removed and
// runs of whitespace or hyphens collapsed into one hyphen. Leading and
// trailing hyphens and underscores are trimmed.
//
//	Slugify("Café Menu & Drinks") == "cafe-menu-drinks"
func Slugify(value string) string {
	folded, _, err := transform.String(asciiFold, value)
	if err != nil {
		folded = value
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		switch {
		case r == '-' || isASCIISpace(r):
			pendingSep = true
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep {
				b.WriteByte('-')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	if pendingSep {
		b.WriteByte('-')
	}
	return strings.Trim(b.String(), "-_")
}

// ValidSlug reports whether value only holds ASCII letters, digits,
// hyphens and underscores.
func ValidSlug(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r == '-' || r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
