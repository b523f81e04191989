// Package playbook fuzzily matches accumulated scammer text against known
// multi-step fraud scripts and predicts the likely next move. Advisory
// only: the matcher never mutates session state, and its output feeds the
// response generator and report notes.
package playbook

import (
	"math"
	"strings"

	"github.com/lurebox/lurebox/pkg/convo"
)

// DefaultThreshold is the minimum phrase-match fraction for a hit.
const DefaultThreshold = 0.4

// Match describes the best-scoring template for a conversation.
type Match struct {
	TemplateID  string  `json:"playbook"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
	NextStep    string  `json:"nextExpected"`
}

// Matcher scores conversations against the template set.
type Matcher struct {
	threshold float64
	templates []Template
}

// NewMatcher creates a Matcher with the given hit threshold. A
// non-positive threshold falls back to DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold, templates: knownTemplates}
}

// Detect returns the best template match for the conversation history, or
// ok=false when no template clears the threshold. Only counterparty turns
// are considered; phrase containment is order-insensitive.
func (m *Matcher) Detect(history []convo.Turn) (Match, bool) {
	texts := convo.ScammerTexts(history)
	if len(texts) == 0 {
		return Match{}, false
	}
	transcript := strings.ToLower(strings.Join(texts, " "))

	var best *Template
	bestScore := 0.0
	for i := range m.templates {
		t := &m.templates[i]
		matched := 0
		for _, phrase := range t.Phrases {
			if strings.Contains(transcript, phrase) {
				matched++
			}
		}
		score := float64(matched) / float64(len(t.Phrases))
		if score > bestScore {
			bestScore = score
			best = t
		}
	}

	if best == nil || bestScore < m.threshold {
		return Match{}, false
	}

	// Predict the next step from how far along the script the scammer is.
	n := len(best.Phrases)
	next := int(math.Floor(bestScore * float64(n)))
	if next > n-1 {
		next = n - 1
	}

	return Match{
		TemplateID:  best.ID,
		Confidence:  math.Round(bestScore*100) / 100,
		Description: best.Description,
		NextStep:    best.Phrases[next],
	}, true
}
