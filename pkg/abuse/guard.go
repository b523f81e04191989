// Package abuse provides a stateless tiered classifier for hostile or
// illegal language, independent of fraud scoring. A critical verdict tells
// the caller to stop generating replies for the turn; it never touches
// session state itself.
package abuse

import "strings"

// Tier is the severity bucket for abusive language.
type Tier string

const (
	TierNone     Tier = "none"
	TierModerate Tier = "moderate"
	TierSevere   Tier = "severe"
	TierCritical Tier = "critical"
)

// Action tells the caller how to proceed after classification.
type Action string

const (
	ActionContinue  Action = "continue"
	ActionWarn      Action = "warn"
	ActionDisengage Action = "disengage"
)

// Verdict is the classification result for one message.
type Verdict struct {
	Tier         Tier     `json:"tier"`
	Action       Action   `json:"action"`
	MatchedTerms []string `json:"matched,omitempty"`
}

// tierRule binds a tier to its keyword set and resulting action.
type tierRule struct {
	tier   Tier
	action Action
	words  []string
}

// Tiers are tested in priority order; the first tier with any match wins,
// so a critical term always outranks a simultaneous moderate one.
var tierRules = []tierRule{
	{TierCritical, ActionDisengage, []string{
		"kill", "rape", "terror", "bomb", "murder", "suicide", "die", "shoot",
	}},
	{TierSevere, ActionWarn, []string{
		"hack", "blackmail", "kidnap", "threaten", "destroy", "attack",
	}},
	{TierModerate, ActionContinue, []string{
		"idiot", "stupid", "fool", "cheat", "fraud", "useless", "waste",
	}},
}

// Check classifies a message. Empty input returns the none verdict.
func Check(text string) Verdict {
	if text == "" {
		return Verdict{Tier: TierNone, Action: ActionContinue}
	}
	lower := strings.ToLower(text)

	for _, rule := range tierRules {
		var matched []string
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				matched = append(matched, w)
			}
		}
		if len(matched) > 0 {
			return Verdict{Tier: rule.tier, Action: rule.action, MatchedTerms: matched}
		}
	}

	return Verdict{Tier: TierNone, Action: ActionContinue}
}
