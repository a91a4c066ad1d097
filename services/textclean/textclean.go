// Package textclean normalizes editor input into direction-stable plain text.
package textclean

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// bidiControls strips directional marks, embeddings, overrides and isolates
var bidiControls = strings.NewReplacer(
	"\u200e", "", // LRM
	"\u200f", "", // RLM
	"\u202a", "", // LRE
	"\u202b", "", // RLE
	"\u202c", "", // PDF
	"\u202d", "", // LRO
	"\u202e", "", // RLO
	"\u2066", "", // LRI
	"\u2067", "", // RLI
	"\u2068", "", // FSI
	"\u2069", "", // PDI
)

// Sanitize removes bidi control characters and applies NFC normalization.
// It is idempotent and never fails.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return norm.NFC.String(bidiControls.Replace(input))
}

// SanitizeAny accepts loosely typed input (e.g. decoded JSON) and treats
// anything that is not a string as empty.
func SanitizeAny(input interface{}) string {
	s, ok := input.(string)
	if !ok {
		return ""
	}
	return Sanitize(s)
}

// IsBlank reports whether the text has no printable content
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsBidiControl reports whether r is one of the stripped control characters
func IsBidiControl(r rune) bool {
	switch {
	case r == '\u200e', r == '\u200f':
		return true
	case r >= '\u202a' && r <= '\u202e':
		return true
	case r >= '\u2066' && r <= '\u2069':
		return true
	}
	return false
}
