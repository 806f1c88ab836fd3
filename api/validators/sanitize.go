package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims input, folds runs of whitespace into single spaces and
// caps the result at maxLen bytes without splitting a rune. maxLen <= 0 means
// no cap.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 || len(cleaned) <= maxLen {
		return cleaned
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
		cut--
	}
	return strings.TrimSpace(cleaned[:cut])
}
