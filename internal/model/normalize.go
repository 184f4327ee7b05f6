package model

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keyTransformer decomposes accented characters and drops the combining
// marks, so "Café" and "Cafe" normalize to the same key.
var keyTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey reduces a company name to its merge key: diacritics stripped,
// case folded, everything but letters and digits removed. Two Company records
// never share a normalized key.
func NormalizeKey(name string) string {
	folded, _, err := transform.String(keyTransformer, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
