package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

var (
	wsRe         = regexp.MustCompile(`\s+`)
	strictCharRe = regexp.MustCompile(`[^\p{L}\p{N} .@-]`)
)

// CleanText collapses consecutive whitespace (including newlines) to
// single spaces and trims. Returns "" for empty or whitespace-only
// input; a non-empty result never has leading/trailing whitespace or
// internal whitespace runs.
func CleanText(s string) string {
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// CleanTextStrict is the résumé-path variant of CleanText: it
// additionally strips every character outside letters, digits, space,
// hyphen, period, and @.
func CleanTextStrict(s string) string {
	return CleanText(strictCharRe.ReplaceAllString(s, " "))
}

// Truncate caps s at limit runes, no suffix. Safe for UTF-8.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	return strutil.TruncateWith(s, limit, "")
}
