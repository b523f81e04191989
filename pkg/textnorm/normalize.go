// Package textnorm rewrites the obfuscated spellings scammers use to slip
// structured data past keyword and regex filters. The extraction pipeline
// runs once over the raw text and once over the normalized text, so the
// rewrites here only need to surface hidden entities, not preserve prose.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Spelled-out digits ("nine eight seven...") defeat naive phone regexes.
var digitWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
}

var (
	reDigitWord = regexp.MustCompile(`(?i)\b(zero|one|two|three|four|five|six|seven|eight|nine)\b`)
	reDigitGap  = regexp.MustCompile(`(\d)[ \t]+(\d)`)
	reWordAt    = regexp.MustCompile(`(?i) at `)
)

// foldTransform decomposes unicode text and strips combining marks, so
// accented or homoglyph-decorated characters compare equal to their ASCII
// forms. Identity on plain ASCII input.
var foldTransform = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize rewrites obfuscated tokens to aid extraction: spelled-out digit
// words become digits, space-separated digit runs are collapsed, and the
// literal word "at" becomes "@". It never fails; on any transform error the
// original text is carried forward unchanged.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	if folded, _, err := transform.String(foldTransform, text); err == nil {
		text = folded
	}

	text = reDigitWord.ReplaceAllStringFunc(text, func(w string) string {
		return digitWords[strings.ToLower(w)]
	})

	// "9 8 7 6" -> "9876". Adjacent pairs overlap, so replace until stable.
	for {
		collapsed := reDigitGap.ReplaceAllString(text, "$1$2")
		if collapsed == text {
			break
		}
		text = collapsed
	}

	// "ramesh at paytm" -> "ramesh@paytm"
	text = reWordAt.ReplaceAllString(text, "@")

	return text
}

// Changed reports whether normalization would rewrite the text. Callers use
// this to skip the redundant second extraction pass.
func Changed(raw, normalized string) bool {
	return raw != normalized
}
