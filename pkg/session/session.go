// Package session provides the authoritative, mutex-protected
// per-conversation state store and the escalation policy that decides when
// accumulated evidence warrants a report.
//
// The store holds process-lifetime memory only. Sessions are created
// lazily on first touch, mutated atomically on every turn, and destroyed
// by explicit delete or the idle-expiry sweep.
package session

import (
	"time"

	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/intel"
)

// Session is the per-conversation aggregate. All fields are owned by the
// Store and must only be touched under its lock; callers get copies via
// Snapshot.
type Session struct {
	ID             string
	CreatedAt      time.Time
	LastActivityAt time.Time

	MessageCount   int
	FraudConfirmed bool
	Confidence     float64

	Entities   intel.Bundle
	Indicators []string
	TurnLog    []convo.Turn

	ReportSent             bool
	ReportCount            int
	LastReportEntityCount  int
	LastReportMessageCount int
}

// Snapshot is a deep copy of a session's aggregate state, safe to use
// outside the store lock. This is the read-only introspection surface.
type Snapshot struct {
	ID             string       `json:"sessionId"`
	CreatedAt      time.Time    `json:"createdAt"`
	LastActivityAt time.Time    `json:"lastActivityAt"`
	MessageCount   int          `json:"messageCount"`
	FraudConfirmed bool         `json:"fraudConfirmed"`
	Confidence     float64      `json:"confidence"`
	Entities       intel.Bundle `json:"extractedIntelligence"`
	Indicators     []string     `json:"indicators"`
	TurnLog        []convo.Turn `json:"conversationHistory"`
	ReportSent     bool         `json:"reportSent"`
	ReportCount    int          `json:"reportCount"`
}

// snapshotLocked copies the session. Caller must hold the store lock.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		LastActivityAt: s.LastActivityAt,
		MessageCount:   s.MessageCount,
		FraudConfirmed: s.FraudConfirmed,
		Confidence:     s.Confidence,
		Entities:       s.Entities, // Bundle slices are replaced, never appended in place
		ReportSent:     s.ReportSent,
		ReportCount:    s.ReportCount,
	}
	if len(s.Indicators) > 0 {
		snap.Indicators = append([]string(nil), s.Indicators...)
	}
	if len(s.TurnLog) > 0 {
		snap.TurnLog = append([]convo.Turn(nil), s.TurnLog...)
	}
	return snap
}

// Update carries any subset of new facts to fold into a session. Nil
// pointer fields mean "no change". Message count is never accepted from
// outside; the store recomputes it from the turn log.
type Update struct {
	Turn           *convo.Turn
	Confidence     *float64
	FraudSuspected *bool
	Entities       *intel.Bundle
	Indicators     []string
}
