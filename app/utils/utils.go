package utils

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Truncate cuts s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}

// Tail returns the last n runes of s, starting at a paragraph boundary when
// one falls inside the window.
func Tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	tail := string(runes[len(runes)-n:])
	if idx := strings.Index(tail, "\n\n"); idx != -1 && idx+2 < len(tail) {
		tail = tail[idx+2:]
	}
	return tail
}

// Slugify lowercases a title and keeps only alphanumerics joined by underscores,
// for use in state and output filenames.
func Slugify(title string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			sb.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}

// DumpJSON renders v as compact JSON for prompt context, truncated to limit runes.
func DumpJSON(v any, limit int) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Truncate(string(data), limit)
}
