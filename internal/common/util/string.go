package util

import "unicode/utf8"

const MaxMessageLength = 2048

// Truncate returns at most the first maxLen bytes of s, never splitting a multi-byte character.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	end := maxLen
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[:end]
}
