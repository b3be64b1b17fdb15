// Package sanitize neutralises unsafe characters in free-text input
// before it is persisted.
package sanitize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// Text trims surrounding whitespace and escapes HTML-significant
// characters. Re-applying escapes entities a second time, so callers
// must sanitise exactly once per write.
func Text(input string) string {
	return htmlEscaper.Replace(strings.TrimSpace(input))
}

// TextPtr applies Text to an optional field, preserving nil.
func TextPtr(input *string) *string {
	if input == nil {
		return nil
	}
	s := Text(*input)
	return &s
}

// Email normalises an address for storage and comparison: NFKC
// normalisation, lowercase, trimmed.
func Email(input string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(input)))
}
