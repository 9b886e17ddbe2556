package pkg

import (
	"strings"
	"unicode"
)

const maxNameLength = 24

// SanitizeName - collapses runs of whitespace, strips control characters and
// caps the visible length of a display name. Returns an empty string when
// nothing printable remains.
func SanitizeName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)

	cleaned = strings.Join(strings.Fields(cleaned), " ")

	runes := []rune(cleaned)
	if len(runes) > maxNameLength {
		cleaned = string(runes[:maxNameLength])
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// NormalizeNameKey - case-insensitive form of a sanitized display name used
// to merge leaderboard standings across cosmetic renames.
func NormalizeNameKey(name string) string {
	return strings.ToLower(SanitizeName(name))
}
