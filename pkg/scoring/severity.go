package scoring

// Severity buckets returned by SeverityFor.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

var highSeverityTags = map[string]bool{
	TagCredential:  true,
	TagPayment:     true,
	TagHandle:      true,
	TagBankAccount: true,
}

var mediumSeverityTags = map[string]bool{
	TagUrgency:   true,
	TagThreat:    true,
	TagAuthority: true,
}

// SeverityFor maps indicator tags to a severity bucket by first-match
// priority: credential/payment/financial-entity tags outrank urgency/threat/
// authority tags; everything else is low.
func SeverityFor(tags []string) string {
	for _, t := range tags {
		if highSeverityTags[t] {
			return SeverityHigh
		}
	}
	for _, t := range tags {
		if mediumSeverityTags[t] {
			return SeverityMedium
		}
	}
	return SeverityLow
}
