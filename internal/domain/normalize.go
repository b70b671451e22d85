package domain

import (
	"strings"
	"unicode"
)

// NormalizeToken prepares a token for storage and lookup:
// trims surrounding whitespace and lowercases. Diacritics, hyphens, and
// apostrophes are preserved so reconstruction stays faithful.
func NormalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// IsPunctuation reports whether a token consists entirely of Unicode
// punctuation or symbol runes. Such tokens are stored as words to keep
// sentence reconstruction exact, but they are not vocabulary.
func IsPunctuation(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
