package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else if unicode.IsControl(r) {
			continue
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName keeps the original case: resource names are matched exactly
// when checking for overlaps.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeDate(date string) string {
	return strings.TrimSpace(date)
}

func NormalizeClock(clock string) string {
	return strings.TrimSpace(clock)
}
