package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurebox/lurebox/pkg/abuse"
	"github.com/lurebox/lurebox/pkg/report"
	"github.com/lurebox/lurebox/pkg/respond"
)

// recordingSink captures every payload handed to it.
type recordingSink struct {
	mu       sync.Mutex
	payloads []report.Payload
	err      error
}

func (s *recordingSink) Send(_ context.Context, p report.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.payloads = append(s.payloads, p)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *recordingSink) last() report.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payloads[len(s.payloads)-1]
}

type failingResponder struct{}

func (failingResponder) Reply(respond.Request) (string, error) {
	return "", errors.New("generator offline")
}

func TestProcessBenignMessage(t *testing.T) {
	sink := &recordingSink{}
	e := New(nil, nil, sink)

	res := e.Process(context.Background(), Message{
		SessionID: "s1",
		Text:      "Hi, meeting tomorrow at 3pm?",
	})

	assert.False(t, res.FraudSuspected)
	assert.Zero(t, res.Confidence)
	assert.NotEmpty(t, res.Reply, "the persona always answers benign traffic")
	assert.False(t, res.ReportEmitted)
	assert.Equal(t, abuse.TierNone, res.Abuse.Tier)
	assert.Equal(t, 0, sink.count())

	snap, ok := e.Store().Get("s1")
	require.True(t, ok)
	assert.Equal(t, 2, snap.MessageCount, "scammer turn plus persona reply")
}

func TestProcessScamEscalatesAtTurnBudget(t *testing.T) {
	sink := &recordingSink{}
	e := New(nil, nil, sink)
	scam := "URGENT! Your account will be suspended today."

	// Each turn logs the inbound message and the reply, so the default
	// budget of 10 is reached on the fifth exchange.
	for i := 0; i < 4; i++ {
		res := e.Process(context.Background(), Message{SessionID: "s1", Text: scam})
		assert.True(t, res.FraudSuspected)
		assert.False(t, res.ReportEmitted, "exchange %d is under budget", i+1)
	}
	res := e.Process(context.Background(), Message{SessionID: "s1", Text: scam})
	assert.True(t, res.ReportEmitted)
	require.Equal(t, 1, sink.count())

	p := sink.last()
	assert.Equal(t, "s1", p.SessionID)
	assert.True(t, p.ScamDetected)
	assert.Equal(t, 10, p.TotalMessagesExchanged)
	assert.Contains(t, p.AgentNotes, "urgency")

	// Two more logged messages per exchange keeps the update trigger
	// firing on every subsequent turn.
	res = e.Process(context.Background(), Message{SessionID: "s1", Text: scam})
	assert.True(t, res.ReportEmitted)
	assert.Equal(t, 2, sink.count())
}

func TestProcessMergesObfuscatedEntities(t *testing.T) {
	sink := &recordingSink{}
	e := New(nil, nil, sink)

	e.Process(context.Background(), Message{
		SessionID: "s1",
		Text:      "send money to ramesh at paytm, call nine eight seven six five four three two one zero",
	})

	snap, ok := e.Store().Get("s1")
	require.True(t, ok)
	assert.Contains(t, snap.Entities.PaymentHandles, "ramesh@paytm")
	assert.Contains(t, snap.Entities.PhoneNumbers, "9876543210")
}

func TestProcessDisengagesOnCriticalAbuse(t *testing.T) {
	sink := &recordingSink{}
	e := New(nil, nil, sink)

	// Confirm fraud first so the early report path is armed.
	e.Process(context.Background(), Message{
		SessionID: "s1",
		Text:      "URGENT! Pay the registration fee now or your account will be suspended. UPI fraudster@paytm",
	})

	res := e.Process(context.Background(), Message{
		SessionID: "s1",
		Text:      "Stop wasting my time or I will kill you",
	})

	assert.True(t, res.Disengaged)
	assert.Empty(t, res.Reply, "no reply after a critical verdict")
	assert.Equal(t, abuse.TierCritical, res.Abuse.Tier)
	assert.True(t, res.ReportEmitted)
	require.Equal(t, 1, sink.count())
	assert.Contains(t, sink.last().AgentNotes, "terminated due to abusive language")
}

func TestProcessNoEarlyReportWithoutConfirmedFraud(t *testing.T) {
	sink := &recordingSink{}
	e := New(nil, nil, sink)

	res := e.Process(context.Background(), Message{
		SessionID: "s1",
		Text:      "I will kill you",
	})
	assert.True(t, res.Disengaged)
	assert.False(t, res.ReportEmitted)
	assert.Equal(t, 0, sink.count())
}

func TestProcessFallsBackWhenResponderFails(t *testing.T) {
	e := New(nil, failingResponder{}, nil)

	res := e.Process(context.Background(), Message{SessionID: "s1", Text: "hello"})
	assert.Equal(t, "Hello? Who is this?", res.Reply)

	snap, ok := e.Store().Get("s1")
	require.True(t, ok)
	assert.Equal(t, 2, snap.MessageCount, "the fallback line is still logged")
}

func TestProcessSurfacesPlaybookMatch(t *testing.T) {
	e := New(nil, nil, &recordingSink{})

	var res Result
	for _, text := range []string{
		"Hello, your account blocked due to pending KYC update",
		"You must verify today, share the OTP when it arrives",
	} {
		res = e.Process(context.Background(), Message{SessionID: "s1", Text: text})
	}
	require.NotNil(t, res.Playbook)
	assert.Equal(t, "kyc_fraud", res.Playbook.TemplateID)
}
