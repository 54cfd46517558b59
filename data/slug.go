package data

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// Slug normalizes a display title into a stable lookup key: diacritics
// folded, lowercased, everything but letters, digits, and hyphens
// stripped, whitespace collapsed to single hyphens.
//
// Slug is idempotent: applying it to an already-normalized slug returns
// the slug unchanged.
func Slug(title string) string {
	s := foldDiacritics(title)
	s = strings.ToLower(s)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// foldDiacritics maps "Añejo" to "Anejo" so accented spellings land on
// the same slug as their plain ones.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
