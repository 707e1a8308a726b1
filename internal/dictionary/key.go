package dictionary

import (
	"strings"
	"unicode"
)

// LookupKey identifies a cached response. It is safe to use as a file name.
type LookupKey string

// NewLookupKey normalizes a word into its cache key.
// Whitespace and path separators become underscores, so "fire engine" and
// "fire_engine" share a key.
func NewLookupKey(word string) LookupKey {
	return LookupKey(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, strings.TrimSpace(word)))
}

func (k LookupKey) String() string {
	return string(k)
}

// IsEmpty reports whether the key names no word, e.g. for a blank input.
func (k LookupKey) IsEmpty() bool {
	return k == ""
}
