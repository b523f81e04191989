package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lurebox/lurebox/pkg/convo"
	"github.com/lurebox/lurebox/pkg/intel"
)

func newTestStore() *Store {
	return NewStore(nil)
}

func scammerTurn(text string) *convo.Turn {
	return &convo.Turn{Speaker: convo.SpeakerScammer, Text: text}
}

func confirmUpdate(conf float64, bundle intel.Bundle, tags ...string) Update {
	yes := true
	return Update{
		Turn:           scammerTurn("msg"),
		Confidence:     &conf,
		FraudSuspected: &yes,
		Entities:       &bundle,
		Indicators:     tags,
	}
}

func TestUpdateCreatesAndAggregates(t *testing.T) {
	st := newTestStore()

	snap := st.Update("s1", confirmUpdate(0.6, intel.Bundle{PaymentHandles: []string{"ramesh@ybl"}}, "payment_request"))
	require.Equal(t, "s1", snap.ID)
	assert.True(t, snap.FraudConfirmed)
	assert.Equal(t, 0.6, snap.Confidence)
	assert.Equal(t, 1, snap.MessageCount)
	assert.Equal(t, []string{"payment_request"}, snap.Indicators)

	// Lower confidence and a false flag must not regress anything.
	no := false
	low := 0.2
	snap = st.Update("s1", Update{
		Turn:           scammerTurn("more"),
		Confidence:     &low,
		FraudSuspected: &no,
		Entities:       &intel.Bundle{PhoneNumbers: []string{"9876543210"}},
		Indicators:     []string{"urgency", "payment_request"},
	})
	assert.True(t, snap.FraudConfirmed, "fraudConfirmed is sticky")
	assert.Equal(t, 0.6, snap.Confidence, "confidence is monotonic")
	assert.Equal(t, 2, snap.MessageCount)
	assert.Equal(t, []string{"payment_request", "urgency"}, snap.Indicators)
	assert.Equal(t, []string{"ramesh@ybl"}, snap.Entities.PaymentHandles)
	assert.Equal(t, []string{"9876543210"}, snap.Entities.PhoneNumbers)
}

func TestMessageCountFollowsTurnLog(t *testing.T) {
	st := newTestStore()
	st.Update("s1", Update{Turn: scammerTurn("hello")})
	st.AppendTurn("s1", convo.Turn{Speaker: convo.SpeakerAgent, Text: "haan ji?"})

	snap, ok := st.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 2, snap.MessageCount)
	assert.Len(t, snap.TurnLog, 2)
}

func TestNoReportWithoutFraudConfirmed(t *testing.T) {
	st := newTestStore()
	for i := 0; i < 20; i++ {
		st.Update("clean", Update{Turn: scammerTurn("just chatting")})
	}
	_, fire := st.ShouldReport("clean")
	assert.False(t, fire, "benign sessions never report regardless of volume")
}

func TestTurnBudgetTriggersFirstReport(t *testing.T) {
	st := newTestStore()
	for i := 0; i < 9; i++ {
		st.Update("s1", confirmUpdate(0.5, intel.Bundle{}))
		_, fire := st.ShouldReport("s1")
		require.False(t, fire, "turn %d is under budget", i+1)
	}
	st.Update("s1", confirmUpdate(0.5, intel.Bundle{}))

	dec, fire := st.ShouldReport("s1")
	require.True(t, fire)
	assert.Equal(t, ReasonTurnBudget, dec.Reason)
	assert.False(t, dec.Update)
	assert.Equal(t, 1, dec.Snapshot.ReportCount)

	// Nothing changed, so a re-check stays quiet.
	_, fire = st.ShouldReport("s1")
	assert.False(t, fire)
}

func TestIntelPlusEngagementTriggersReport(t *testing.T) {
	st := newTestStore()
	bundle := intel.Bundle{
		PaymentHandles: []string{"fraudster@paytm"},
		BankAccounts:   []string{"123456789012"},
	}
	for i := 0; i < 6; i++ {
		st.Update("s1", confirmUpdate(0.5, bundle))
	}
	dec, fire := st.ShouldReport("s1")
	require.True(t, fire)
	assert.Equal(t, ReasonIntelGathered, dec.Reason)
}

func TestFastFailPath(t *testing.T) {
	st := newTestStore()
	bundle := intel.Bundle{PaymentHandles: []string{"fraudster@paytm"}}
	for i := 0; i < 3; i++ {
		st.Update("s1", confirmUpdate(0.95, bundle))
	}
	dec, fire := st.ShouldReport("s1")
	require.True(t, fire)
	assert.Equal(t, ReasonFastFail, dec.Reason)
}

func TestUpdateReportOnNewIntelOrEngagement(t *testing.T) {
	st := newTestStore()
	bundle := intel.Bundle{PaymentHandles: []string{"fraudster@paytm"}}
	for i := 0; i < 10; i++ {
		st.Update("s1", confirmUpdate(0.7, bundle))
	}
	_, fire := st.ShouldReport("s1")
	require.True(t, fire)

	// Fresh intel alone refreshes the report.
	st.Update("s1", Update{Entities: &intel.Bundle{BankAccounts: []string{"987654321098"}}})
	dec, fire := st.ShouldReport("s1")
	require.True(t, fire)
	assert.Equal(t, ReasonNewIntel, dec.Reason)
	assert.True(t, dec.Update)
	assert.Equal(t, 2, dec.Snapshot.ReportCount)

	// One more message is not enough; two are.
	st.Update("s1", Update{Turn: scammerTurn("hello?")})
	_, fire = st.ShouldReport("s1")
	assert.False(t, fire)
	st.Update("s1", Update{Turn: scammerTurn("are you there")})
	dec, fire = st.ShouldReport("s1")
	require.True(t, fire)
	assert.Equal(t, ReasonEngagement, dec.Reason)
}

func TestForceReportRequiresConfirmedFraud(t *testing.T) {
	st := newTestStore()
	st.Update("benign", Update{Turn: scammerTurn("hi")})
	_, ok := st.ForceReport("benign", ReasonAbuseTermination)
	assert.False(t, ok)

	st.Update("bad", confirmUpdate(0.9, intel.Bundle{}))
	dec, ok := st.ForceReport("bad", ReasonAbuseTermination)
	require.True(t, ok)
	assert.Equal(t, ReasonAbuseTermination, dec.Reason)
	assert.True(t, dec.Snapshot.ReportSent)
}

func TestIdleExpiry(t *testing.T) {
	st := newTestStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	st.Update("s1", confirmUpdate(0.9, intel.Bundle{PaymentHandles: []string{"x@ybl"}}))

	now = now.Add(59 * time.Minute)
	_, ok := st.Get("s1")
	assert.True(t, ok, "still inside the idle window")

	now = now.Add(2 * time.Minute)
	_, ok = st.Get("s1")
	assert.False(t, ok, "idled out")

	// A new message under the same id starts from zero.
	snap := st.Update("s1", Update{Turn: scammerTurn("hello again")})
	assert.False(t, snap.FraudConfirmed)
	assert.Equal(t, 1, snap.MessageCount)
	assert.Empty(t, snap.Entities.PaymentHandles)
}

func TestDeleteAndPurge(t *testing.T) {
	st := newTestStore()
	for i := 0; i < 3; i++ {
		st.Update(fmt.Sprintf("s%d", i), Update{Turn: scammerTurn("hi")})
	}
	assert.Equal(t, 3, st.Count())
	assert.True(t, st.Delete("s0"))
	assert.False(t, st.Delete("s0"))
	assert.Equal(t, 2, st.PurgeAll())
	assert.Equal(t, 0, st.Count())
}

func TestConcurrentUpdatesStayConsistent(t *testing.T) {
	st := newTestStore()
	const workers = 8
	const perWorker = 25

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < perWorker; i++ {
				st.Update("shared", Update{Turn: scammerTurn("ping")})
			}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	snap, ok := st.Get("shared")
	require.True(t, ok)
	assert.Equal(t, workers*perWorker, snap.MessageCount)
	assert.Len(t, snap.TurnLog, workers*perWorker)
}
