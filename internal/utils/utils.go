package utils

import (
	"strings"
	"unicode/utf8"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	cut, ok := cutRunes(s, limit)
	if !ok {
		return s
	}
	if cut == "" {
		return ""
	}
	return cut + "..."
}

// TruncateRunes cuts s to at most limit runes without any marker.
func TruncateRunes(s string, limit int) string {
	cut, ok := cutRunes(s, limit)
	if !ok {
		return s
	}
	return strings.TrimSpace(cut)
}

func cutRunes(s string, limit int) (string, bool) {
	if limit <= 0 {
		return "", true
	}
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:limit]), true
}
