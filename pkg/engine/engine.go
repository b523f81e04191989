// Package engine runs one inbound message through the full honeypot
// pipeline: normalize, extract, score, abuse-check, persist, reply,
// escalate. The store lock is never held across a collaborator call;
// the engine copies what it needs, releases, calls out, then persists
// results through the store's atomic entry points.
package engine

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lurebox/lurebox/pkg/abuse"
	"github.com/lurebox/lurebox/pkg/config"
	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/intel"
	"github.com/lurebox/lurebox/pkg/logger"
	"github.com/lurebox/lurebox/pkg/playbook"
	"github.com/lurebox/lurebox/pkg/report"
	"github.com/lurebox/lurebox/pkg/respond"
	"github.com/lurebox/lurebox/pkg/scoring"
	"github.com/lurebox/lurebox/pkg/session"
	"github.com/lurebox/lurebox/pkg/telemetry"
	"github.com/lurebox/lurebox/pkg/textnorm"
)

// Message is one inbound counterparty message plus whatever context the
// transport layer could parse.
type Message struct {
	SessionID  string
	Text       string
	History    []convo.Turn
	LocaleHint string
}

// Result is what the transport layer returns to the caller and logs.
type Result struct {
	SessionID      string          `json:"sessionId"`
	Reply          string          `json:"reply"`
	FraudSuspected bool            `json:"fraudSuspected"`
	Confidence     float64         `json:"confidence"`
	Severity       string          `json:"severity"`
	Indicators     []string        `json:"indicators"`
	Playbook       *playbook.Match `json:"playbook,omitempty"`
	Abuse          abuse.Verdict   `json:"abuse"`
	Disengaged     bool            `json:"disengaged"`
	ReportEmitted  bool            `json:"reportEmitted"`
}

// Engine wires the core subsystems together. Safe for concurrent use;
// all mutable state lives in the store.
type Engine struct {
	store     *session.Store
	scorer    *scoring.Scorer
	matcher   *playbook.Matcher
	responder respond.Generator
	sink      report.Sink
}

// New assembles an engine from a config profile and the two external
// collaborators. A nil responder gets the scripted persona; a nil sink
// gets NopSink.
func New(cfg *config.Config, responder respond.Generator, sink report.Sink) *Engine {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if responder == nil {
		responder = respond.NewScriptedGenerator()
	}
	if sink == nil {
		sink = report.NopSink{}
	}
	return &Engine{
		store:     session.NewStore(cfg),
		scorer:    scoring.NewScorer(cfg),
		matcher:   playbook.NewMatcher(cfg.PlaybookThreshold),
		responder: responder,
		sink:      sink,
	}
}

// Store exposes the session store for introspection and admin surfaces.
func (e *Engine) Store() *session.Store { return e.store }

// Process runs one message through the pipeline and returns the
// persona's reply plus the detection outcome for that turn.
func (e *Engine) Process(ctx context.Context, msg Message) Result {
	timer := prometheus.NewTimer(telemetry.ProcessingSeconds)
	defer timer.ObserveDuration()

	// Extraction runs on the raw text and, when normalization actually
	// rewrote something, again on the normalized form.
	bundle := intel.Extract(msg.Text)
	if normalized := textnorm.Normalize(msg.Text); textnorm.Changed(msg.Text, normalized) {
		bundle = bundle.Merge(intel.Extract(normalized))
	}

	score := e.scorer.Score(msg.Text, msg.History)
	verdict := abuse.Check(msg.Text)

	snap := e.store.Update(msg.SessionID, session.Update{
		Turn:           &convo.Turn{Speaker: convo.SpeakerScammer, Text: msg.Text},
		Confidence:     &score.Confidence,
		FraudSuspected: &score.FraudSuspected,
		Entities:       &bundle,
		Indicators:     score.IndicatorTags,
	})

	telemetry.MessagesProcessed.WithLabelValues(boolLabel(score.FraudSuspected)).Inc()
	telemetry.ActiveSessions.Set(float64(e.store.Count()))

	res := Result{
		SessionID:      msg.SessionID,
		FraudSuspected: snap.FraudConfirmed,
		Confidence:     snap.Confidence,
		Severity:       scoring.SeverityFor(snap.Indicators),
		Indicators:     snap.Indicators,
		Abuse:          verdict,
	}

	if verdict.Action == abuse.ActionDisengage {
		return e.disengage(ctx, msg.SessionID, res)
	}

	if match, ok := e.matcher.Detect(snap.TurnLog); ok {
		res.Playbook = &match
	}

	// Reply generation happens outside any lock, on the copied log.
	reply, err := e.responder.Reply(respond.Request{
		Message:    msg.Text,
		History:    snap.TurnLog,
		Indicators: snap.Indicators,
		LocaleHint: msg.LocaleHint,
		Playbook:   res.Playbook,
	})
	if err != nil {
		logger.Error("reply generation failed",
			zap.String("sessionId", msg.SessionID),
			zap.Error(err))
		reply = "Hello? Who is this?"
	}
	res.Reply = reply
	e.store.AppendTurn(msg.SessionID, convo.Turn{Speaker: convo.SpeakerAgent, Text: reply})

	if dec, fire := e.store.ShouldReport(msg.SessionID); fire {
		res.ReportEmitted = true
		e.emit(ctx, dec)
	}
	return res
}

// disengage handles a critical abuse verdict: no reply this turn and,
// if fraud was already confirmed, an early report noting termination.
func (e *Engine) disengage(ctx context.Context, id string, res Result) Result {
	telemetry.AbuseDisengagements.Inc()
	res.Disengaged = true
	logger.Warn("disengaging after critical abuse",
		zap.String("sessionId", id),
		zap.Strings("matchedTerms", res.Abuse.MatchedTerms))

	if dec, ok := e.store.ForceReport(id, session.ReasonAbuseTermination); ok {
		res.ReportEmitted = true
		e.emit(ctx, dec)
	}
	return res
}

// emit builds and delivers a report for an escalation decision. The
// decision's bookkeeping already happened; delivery failure is logged
// and counted, never retried through the policy.
func (e *Engine) emit(ctx context.Context, dec session.Decision) {
	notes := report.DefaultNotes(dec.Snapshot)
	if dec.Reason == session.ReasonAbuseTermination {
		notes += " Session terminated due to abusive language."
	}
	payload := report.Build(dec.Snapshot, notes)

	logger.Info("emitting report",
		zap.String("sessionId", dec.Snapshot.ID),
		zap.String("reason", string(dec.Reason)),
		zap.Bool("update", dec.Update),
		zap.Int("reportCount", dec.Snapshot.ReportCount),
		zap.String("intel", dec.Snapshot.Entities.Summary()))

	if err := e.sink.Send(ctx, payload); err != nil {
		telemetry.ReportFailures.Inc()
		logger.Error("report delivery failed",
			zap.String("sessionId", dec.Snapshot.ID),
			zap.Error(err))
		return
	}
	telemetry.ReportsEmitted.WithLabelValues(string(dec.Reason)).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
