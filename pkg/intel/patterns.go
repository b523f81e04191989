package intel

import (
	"regexp"
	"strings"
)

// =============================================================================
// COMPILED PATTERNS
// All regexes are compiled once at package init and shared across calls.
// =============================================================================

// MaxTextLength caps input before any pattern runs. Longer payloads are
// truncated, never rejected.
const MaxTextLength = 50000

var (
	// local@domain where domain is bare letters (UPI handle shape).
	reHandle = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z]{2,}`)

	// 9-18 digit run not starting with 0.
	reAccount = regexp.MustCompile(`\b[1-9]\d{8,17}\b`)

	// Indian mobile: 10 digits, leading 6-9.
	rePhone = regexp.MustCompile(`\b[6-9]\d{9}\b`)

	// Bank branch routing code: 4 letters + "0" + 6 alphanumeric.
	reRouting = regexp.MustCompile(`(?i)\b[A-Z]{4}0[A-Z0-9]{6}\b`)

	// Scheme-qualified link. Trailing punctuation is stripped afterwards;
	// RE2 has no lookbehind so the regex alone cannot exclude it.
	reURL = regexp.MustCompile("(?i)https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

	// Shortener links without a scheme, e.g. "bit.ly/abc123".
	reShortURL = regexp.MustCompile(`(?i)\b(?:` + shortenerAlternation() + `)/[a-zA-Z0-9]+`)

	// General email shape.
	reEmail = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

func shortenerAlternation() string {
	quoted := make([]string, len(shortenerDomains))
	for i, d := range shortenerDomains {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return strings.Join(quoted, "|")
}

// capText truncates text to MaxTextLength.
func capText(text string) string {
	if len(text) > MaxTextLength {
		return text[:MaxTextLength]
	}
	return text
}
