package util

import "strings"

// SanitizeForModel restricts text to printable ASCII and collapses all
// whitespace runs to single spaces. Non-ASCII content is dropped, which is an
// accepted trade-off for keeping request payloads intact. The function is
// idempotent: sanitizing already-sanitized text returns it unchanged.
func SanitizeForModel(value string) string {
	if value == "" {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r > 127 {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TruncateWords returns text cut to at most maxWords whitespace-delimited
// tokens. The second return value reports whether truncation happened.
func TruncateWords(text string, maxWords int) (string, bool) {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text, false
	}
	return strings.Join(words[:maxWords], " "), true
}
