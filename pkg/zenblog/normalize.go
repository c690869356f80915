package zenblog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches everything a slug may not contain
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// repeatedHyphens matches runs of two or more hyphens
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-safe slug: accents are decomposed and
// stripped, the result is lowercased, whitespace and underscores become
// hyphens, remaining non-alphanumerics are dropped and hyphen runs collapse
// to one. Returns "" when nothing slug-worthy survives.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.NewReplacer(" ", "-", "_", "-").Replace(result)
	result = nonSlugChars.ReplaceAllString(result, "")
	result = repeatedHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is already in canonical slug form.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	return s == Slugify(s)
}
