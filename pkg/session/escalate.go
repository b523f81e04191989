package session

// Escalation thresholds beyond the configurable turn budget and intel
// floor. Fixed by policy, not tunable per deployment.
const (
	escalateIntelMinMessages = 6
	escalateHighConfidence   = 0.8
	escalateHighConfMessages = 8
	escalateFastConfidence   = 0.9
	escalateFastMinMessages  = 3
	updateReportMessageDelta = 2
)

// policy holds the per-store escalation knobs.
type policy struct {
	maxTurnBudget int
	minIntel      int
}

// Reason labels why a report fired. Surfaced in logs and agent notes.
type Reason string

const (
	ReasonTurnBudget       Reason = "turn_budget_reached"
	ReasonIntelGathered    Reason = "sufficient_intel"
	ReasonHighConfidence   Reason = "sustained_high_confidence"
	ReasonFastFail         Reason = "fast_fail"
	ReasonNewIntel         Reason = "new_intel_since_report"
	ReasonEngagement       Reason = "continued_engagement"
	ReasonAbuseTermination Reason = "abuse_termination"
)

// Decision tells the caller a report is due and carries the state to
// build it from, copied before the lock was released.
type Decision struct {
	Reason   Reason
	Update   bool // true when this refreshes an earlier report
	Snapshot Snapshot
}

// ShouldReport runs the escalation policy for id and, when it fires,
// atomically marks the report as sent and snapshots the counts it was
// based on. Every true return means "emit a report now". A session may
// fire repeatedly as new intelligence or engagement accumulates.
func (st *Store) ShouldReport(id string) (Decision, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok || st.expiredLocked(sess) {
		return Decision{}, false
	}
	if !sess.FraudConfirmed {
		return Decision{}, false
	}

	hv := sess.Entities.HighValueCount()
	mc := sess.MessageCount

	var reason Reason
	if !sess.ReportSent {
		switch {
		case mc >= st.policy.maxTurnBudget:
			reason = ReasonTurnBudget
		case hv >= st.policy.minIntel && mc >= escalateIntelMinMessages:
			reason = ReasonIntelGathered
		case sess.Confidence >= escalateHighConfidence && mc >= escalateHighConfMessages:
			reason = ReasonHighConfidence
		case sess.Confidence >= escalateFastConfidence && hv >= 1 && mc >= escalateFastMinMessages:
			reason = ReasonFastFail
		default:
			return Decision{}, false
		}
	} else {
		switch {
		case hv > sess.LastReportEntityCount:
			reason = ReasonNewIntel
		case mc-sess.LastReportMessageCount >= updateReportMessageDelta:
			reason = ReasonEngagement
		default:
			return Decision{}, false
		}
	}

	update := sess.ReportSent
	sess.ReportSent = true
	sess.ReportCount++
	sess.LastReportEntityCount = hv
	sess.LastReportMessageCount = mc

	return Decision{Reason: reason, Update: update, Snapshot: sess.snapshotLocked()}, true
}

// ForceReport marks a report as emitted outside the normal policy, used
// when a session is being terminated early (abuse disengagement) with
// fraud already confirmed. Returns false if the session is unknown or
// fraud was never confirmed.
func (st *Store) ForceReport(id string, reason Reason) (Decision, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok || st.expiredLocked(sess) || !sess.FraudConfirmed {
		return Decision{}, false
	}

	update := sess.ReportSent
	sess.ReportSent = true
	sess.ReportCount++
	sess.LastReportEntityCount = sess.Entities.HighValueCount()
	sess.LastReportMessageCount = sess.MessageCount

	return Decision{Reason: reason, Update: update, Snapshot: sess.snapshotLocked()}, true
}
