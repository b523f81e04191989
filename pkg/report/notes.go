package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/session"
)

// =========================================================================
// TACTIC ANALYSIS
// =========================================================================

// tactic pairs a label with the transcript markers that reveal it.
type tactic struct {
	label   string
	markers []string
}

// Checked in order; the notes list every tactic that matched.
var tactics = []tactic{
	{"urgency_pressure", []string{"urgent", "immediately", "right now", "jaldi", "turant", "within 24 hours"}},
	{"fear_inducing", []string{"police", "blocked", "arrest", "legal action", "suspended", "case filed"}},
	{"authority_impersonation", []string{"bank official", "rbi", "government", "income tax", "customs", "courier department"}},
	{"greed_exploitation", []string{"lottery", "prize", "won", "cashback", "reward", "lucky draw"}},
	{"credential_harvesting", []string{"otp", "pin", "password", "cvv", "aadhaar", "verification code"}},
}

// AnalyzeTactics scans the counterparty side of the transcript and
// labels the manipulation techniques in play.
func AnalyzeTactics(log []convo.Turn) []string {
	joined := strings.ToLower(strings.Join(convo.ScammerTexts(log), " "))
	if joined == "" {
		return nil
	}
	var found []string
	for _, t := range tactics {
		for _, m := range t.markers {
			if strings.Contains(joined, m) {
				found = append(found, t.label)
				break
			}
		}
	}
	return found
}

// =========================================================================
// AGENT NOTES
// =========================================================================

const (
	maxNotedIndicators = 10
	maxIndicatorLength = 50
	maxNotedEntities   = 3
)

var reIndicatorJunk = regexp.MustCompile(`[^\w\s-]`)

// sanitizeIndicators keeps the indicator list printable and bounded
// before it goes into free text.
func sanitizeIndicators(indicators []string) []string {
	if len(indicators) > maxNotedIndicators {
		indicators = indicators[:maxNotedIndicators]
	}
	out := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		clean := reIndicatorJunk.ReplaceAllString(ind, "")
		if len(clean) > maxIndicatorLength {
			clean = clean[:maxIndicatorLength]
		}
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// DefaultNotes writes the analyst-facing summary: tactics observed,
// concrete intel samples, indicators, confidence, and volume.
func DefaultNotes(snap session.Snapshot) string {
	var parts []string

	if tactics := AnalyzeTactics(snap.TurnLog); len(tactics) > 0 {
		parts = append(parts, fmt.Sprintf("Scammer used %s tactics.", strings.Join(tactics, ", ")))
	}

	var extracted []string
	appendSample := func(label string, vals []string) {
		if len(vals) == 0 {
			return
		}
		if len(vals) > maxNotedEntities {
			vals = vals[:maxNotedEntities]
		}
		extracted = append(extracted, fmt.Sprintf("%s: %s", label, strings.Join(vals, ", ")))
	}
	appendSample("UPIs", snap.Entities.PaymentHandles)
	appendSample("Phones", snap.Entities.PhoneNumbers)
	appendSample("Banks", snap.Entities.BankAccounts)
	appendSample("Links", snap.Entities.URLs)
	appendSample("Emails", snap.Entities.EmailAddresses)

	if len(extracted) > 0 {
		parts = append(parts, fmt.Sprintf("Extracted: %s.", strings.Join(extracted, "; ")))
	} else {
		parts = append(parts, "No actionable intel extracted.")
	}

	if inds := sanitizeIndicators(snap.Indicators); len(inds) > 0 {
		parts = append(parts, fmt.Sprintf("Indicators: %s.", strings.Join(inds, ", ")))
	}

	parts = append(parts, fmt.Sprintf("Confidence: %.0f%%. Messages: %d.", snap.Confidence*100, snap.MessageCount))

	return strings.Join(parts, " ")
}
