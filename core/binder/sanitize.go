package binder

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SanitizeString removes characters that could be used in injection attacks
// and normalises the result to NFC. It strips NUL bytes, CR/LF and other
// control characters while keeping tabs and printable runes.
func SanitizeString(value string) string {
	value = strings.ReplaceAll(value, "\x00", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\n", "")

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r == utf8.RuneError {
			continue
		}
		if r == '\t' || !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}

	return norm.NFC.String(b.String())
}
