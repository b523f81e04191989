// Package scoring computes a per-message fraud confidence from stacked
// keyword-family weights, entity-presence signals and contextual
// adjustments, optionally informed by prior turns.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/lurebox/lurebox/pkg/config"
	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/intel"
	"github.com/lurebox/lurebox/pkg/logger"
)

// Result is the immutable outcome of scoring one message. Sessions merge
// results by tag union and confidence max.
type Result struct {
	FraudSuspected bool     `json:"fraudSuspected"`
	Confidence     float64  `json:"confidence"`
	IndicatorTags  []string `json:"indicatorTags"`
	Modifiers      []string `json:"modifiers"`
}

// Scorer holds the verdict thresholds. Safe for concurrent use; all state
// is read-only after construction.
type Scorer struct {
	scamThreshold float64
	minIndicators int
}

// NewScorer creates a Scorer from config. A nil config uses defaults.
func NewScorer(cfg *config.Config) *Scorer {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Scorer{
		scamThreshold: cfg.ScamThreshold,
		minIndicators: cfg.MinIndicators,
	}
}

// Score analyzes one message, optionally with prior-turn history. A fault
// inside any step is confined to that step: the signal it would have added
// is skipped and everything accumulated so far is preserved.
func (s *Scorer) Score(message string, history []convo.Turn) Result {
	if message == "" {
		return Result{}
	}
	if len(message) > intel.MaxTextLength {
		message = message[:intel.MaxTextLength]
	}

	lower := strings.ToLower(message)
	confidence := 0.0
	var tags []string
	var modifiers []string

	s.step("keyword_families", func() {
		for _, f := range keywordFamilies {
			if containsAny(lower, f.phrases) {
				tags = append(tags, f.tag)
				confidence += f.weight
			}
		}
	})

	s.step("entity_presence", func() {
		bundle := intel.Extract(message)
		if len(bundle.URLs) > 0 {
			tags = append(tags, TagLink)
			confidence += weightLink
		}
		if len(bundle.PaymentHandles) > 0 {
			tags = append(tags, TagHandle)
			confidence += weightHandle
		}
		if len(bundle.PhoneNumbers) > 0 {
			tags = append(tags, TagPhone)
			confidence += weightPhone
		}
		if len(bundle.BankAccounts) > 0 {
			tags = append(tags, TagBankAccount)
			confidence += weightBankAccount
		}
	})

	s.step("context_modifiers", func() {
		for _, rule := range safeContexts {
			if containsAny(lower, rule.words) {
				confidence += rule.delta
				modifiers = append(modifiers, fmt.Sprintf("safe_%s(%.2f)", rule.name, rule.delta))
			}
		}
		confidence = math.Max(0, confidence)

		for _, rule := range amplifyingContexts {
			if containsAny(lower, rule.words) {
				confidence += rule.delta
				modifiers = append(modifiers, fmt.Sprintf("amplify_%s(+%.2f)", rule.name, rule.delta))
			}
		}
	})

	if len(history) > 0 {
		s.step("history_recurrence", func() {
			confidence += historySignal(history)
		})
	}

	confidence = math.Min(1.0, math.Max(0, confidence))
	confidence = math.Round(confidence*100) / 100

	return Result{
		FraudSuspected: confidence >= s.scamThreshold || len(tags) >= s.minIndicators,
		Confidence:     confidence,
		IndicatorTags:  tags,
		Modifiers:      modifiers,
	}
}

// step runs one scoring stage, downgrading any panic to "no further signal
// from this stage". Tags and modifiers appended before the fault survive.
func (s *Scorer) step(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("scorer step fault",
				zap.String("step", name),
				zap.Any("panic", r))
		}
	}()
	fn()
}

// historySignal adds a small bonus per pressure category that recurs in at
// least two prior counterparty turns.
func historySignal(history []convo.Turn) float64 {
	texts := convo.ScammerTexts(history)
	if len(texts) == 0 {
		return 0
	}

	urgent, paying := 0, 0
	for _, t := range texts {
		lower := strings.ToLower(t)
		if containsAny(lower, historyUrgencyPhrases) {
			urgent++
		}
		if containsAny(lower, historyPaymentPhrases) {
			paying++
		}
	}

	bonus := 0.0
	if urgent >= historyMinRecurrences {
		bonus += historyBonus
	}
	if paying >= historyMinRecurrences {
		bonus += historyBonus
	}
	return bonus
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
