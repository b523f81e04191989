package scoring

import (
	"strings"
	"testing"

	"github.com/lurebox/lurebox/pkg/convo"
)

func TestScore_BenignMessage(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score("Hi, meeting tomorrow at 3pm?", nil)

	if r.FraudSuspected {
		t.Errorf("benign message flagged: %+v", r)
	}
	if r.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", r.Confidence)
	}
}

func TestScore_ObviousScam(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score("URGENT! Account blocked! Send money to verify now!", nil)

	if !r.FraudSuspected {
		t.Fatalf("scam message not flagged: %+v", r)
	}
	for _, want := range []string{TagUrgency, TagThreat, TagPayment} {
		if !hasTag(r.IndicatorTags, want) {
			t.Errorf("missing tag %s in %v", want, r.IndicatorTags)
		}
	}
}

func TestScore_ConfidenceAlwaysClamped(t *testing.T) {
	s := NewScorer(nil)

	// Fires every keyword family, every entity signal and both amplifiers;
	// the raw weight sum is well past 1.0.
	msg := "URGENT police case! I am bank manager, send money transfer now. " +
		"Share OTP and card number. You won a lottery prize! " +
		"Pay to fraud@paytm account 123456789012 call 9876543210 " +
		"https://bit.ly/trap don't tell anyone, within 1 hour only"

	r := s.Score(msg, nil)
	if r.Confidence < 0 || r.Confidence > 1 {
		t.Errorf("Confidence = %v, out of [0,1]", r.Confidence)
	}
	if r.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want clamped 1.0", r.Confidence)
	}
	if !r.FraudSuspected {
		t.Error("saturated message not flagged")
	}
}

func TestScore_TwoIndicatorsSufficeBelowThreshold(t *testing.T) {
	s := NewScorer(nil)

	// Phone + handle presence only: 0.05 + 0.10 = 0.15 < 0.3, but two
	// distinct indicator families are present.
	r := s.Score("ramesh@ybl 9876543210", nil)

	if r.Confidence >= 0.3 {
		t.Fatalf("test premise broken: confidence %v >= threshold", r.Confidence)
	}
	if len(r.IndicatorTags) < 2 {
		t.Fatalf("expected >=2 tags, got %v", r.IndicatorTags)
	}
	if !r.FraudSuspected {
		t.Error("two distinct indicators should suffice")
	}
}

func TestScore_SafeContextPenalty(t *testing.T) {
	s := NewScorer(nil)

	plain := s.Score("transfer done", nil)
	family := s.Score("transfer done, tell mom", nil)

	if family.Confidence >= plain.Confidence {
		t.Errorf("safe context did not reduce score: %v >= %v", family.Confidence, plain.Confidence)
	}
	if !hasModifier(family.Modifiers, "safe_personal(-0.15)") {
		t.Errorf("missing safe modifier in %v", family.Modifiers)
	}
}

func TestScore_FloorAtZero(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score("mom dad doctor meeting dinner", nil)
	if r.Confidence != 0 {
		t.Errorf("Confidence = %v, want floored 0", r.Confidence)
	}
	if len(r.Modifiers) < 3 {
		t.Errorf("all three safe categories should record modifiers: %v", r.Modifiers)
	}
}

func TestScore_AmplifyingContexts(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score("don't tell anyone, do it within 1 hour", nil)

	if !hasModifier(r.Modifiers, "amplify_isolation(+0.20)") {
		t.Errorf("missing isolation modifier in %v", r.Modifiers)
	}
	if !hasModifier(r.Modifiers, "amplify_deadline(+0.15)") {
		t.Errorf("missing deadline modifier in %v", r.Modifiers)
	}
	if r.Confidence != 0.35 {
		t.Errorf("Confidence = %v, want 0.35", r.Confidence)
	}
}

func TestScore_HistoryRecurrence(t *testing.T) {
	s := NewScorer(nil)
	history := []convo.Turn{
		{Speaker: convo.SpeakerScammer, Text: "urgent, reply fast"},
		{Speaker: convo.SpeakerAgent, Text: "what happened?"},
		{Speaker: convo.SpeakerScammer, Text: "hurry, pay the fee"},
		{Speaker: convo.SpeakerScammer, Text: "send it, pay now"},
	}

	without := s.Score("ok final step", nil)
	with := s.Score("ok final step", history)

	// urgency recurs in 2 turns (+0.1) and payment in 2 turns (+0.1)
	diff := with.Confidence - without.Confidence
	if diff < 0.19 || diff > 0.21 {
		t.Errorf("history bonus = %v, want 0.20", diff)
	}
}

func TestScore_EmptyMessage(t *testing.T) {
	s := NewScorer(nil)
	r := s.Score("", []convo.Turn{{Speaker: convo.SpeakerScammer, Text: "urgent"}})
	if r.FraudSuspected || r.Confidence != 0 || len(r.IndicatorTags) != 0 {
		t.Errorf("empty message should be zero-valued: %+v", r)
	}
}

func TestScore_OversizedMessage(t *testing.T) {
	s := NewScorer(nil)
	msg := "urgent send money " + strings.Repeat("x", 60000)
	r := s.Score(msg, nil)
	if !r.FraudSuspected {
		t.Error("leading signal within the cap should still score")
	}
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		tags []string
		want string
	}{
		{[]string{TagCredential}, SeverityHigh},
		{[]string{TagUrgency, TagPayment}, SeverityHigh},
		{[]string{TagUrgency, TagThreat}, SeverityMedium},
		{[]string{TagLink, TagPhone}, SeverityLow},
		{nil, SeverityLow},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.tags); got != tt.want {
			t.Errorf("SeverityFor(%v) = %s, want %s", tt.tags, got, tt.want)
		}
	}
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

func hasModifier(mods []string, want string) bool {
	for _, m := range mods {
		if m == want {
			return true
		}
	}
	return false
}
