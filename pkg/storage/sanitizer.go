package storage

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxDescriptionLength is the maximum allowed length of a node description in bytes
	MaxDescriptionLength = 10000
)

// SanitizeDescription makes a description safe to print on a terminal:
// - Removal of null bytes and invalid UTF-8
// - Removal of control characters other than newline and tab, which drops
//   the ESC that starts terminal escape sequences
// - Length limiting on a rune boundary
func SanitizeDescription(s string) string {
	if !needsSanitizing(s) {
		return s
	}

	var b strings.Builder
	b.Grow(min(len(s), MaxDescriptionLength))
	for _, r := range strings.ToValidUTF8(s, "") {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > MaxDescriptionLength {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func needsSanitizing(s string) bool {
	if len(s) > MaxDescriptionLength || !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return true
		}
	}
	return false
}
