// Package slug turns display names into URL path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxLength = 60

// Make lowercases name, strips diacritics and joins the remaining letters and digits with
// single hyphens. It returns an empty string when nothing usable remains.
func Make(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder

	hyphen := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)

			hyphen = false
		case b.Len() > 0 && !hyphen:
			b.WriteByte('-')

			hyphen = true
		}

		if b.Len() >= maxLength {
			break
		}
	}

	return strings.Trim(b.String(), "-")
}
