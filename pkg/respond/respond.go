// Package respond generates the decoy persona's replies. The default
// implementation is fully scripted; the Generator seam exists so an
// LLM-backed generator can be swapped in without touching the engine.
package respond

import (
	"regexp"

	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/playbook"
)

// MaxInputLength caps how much of an inbound message the generator will
// look at.
const MaxInputLength = 2000

// Request carries everything a generator may condition a reply on.
type Request struct {
	Message    string
	History    []convo.Turn
	Indicators []string
	LocaleHint string
	Playbook   *playbook.Match
}

// Generator produces the persona's next line. Implementations must be
// safe for concurrent use.
type Generator interface {
	Reply(req Request) (string, error)
}

// =========================================================================
// INPUT SANITIZATION
// =========================================================================

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+previous`),
	regexp.MustCompile(`(?i)system:`),
	regexp.MustCompile(`(?i)assistant:`),
	regexp.MustCompile(`<\|im_start\|>`),
}

// Sanitize trims oversized input and blanks known prompt-injection
// phrases. Scripted generators are immune, but the seam is shared with
// LLM-backed ones.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	if len(text) > MaxInputLength {
		text = text[:MaxInputLength]
	}
	for _, re := range injectionPatterns {
		text = re.ReplaceAllString(text, "[FILTERED]")
	}
	return text
}
