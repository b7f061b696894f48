// Package utils provides shared text and logging helpers.
package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate returns s cut to at most maxLen runes, with "..." appended if cut.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}

// CollapseSpace replaces every run of whitespace in s with a single space.
// Transcript paragraphs keep the line breaks of the scanned page.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
