package respond

import "github.com/lurebox/lurebox/pkg/convo"

// Phase tracks how deep into the engagement the persona is. Early turns
// play confused, later turns actively fish for payment rails.
type Phase string

const (
	PhaseInitial       Phase = "initial"
	PhaseTrustBuilding Phase = "trust_building"
	PhaseInfoGathering Phase = "information_gathering"
	PhaseExtraction    Phase = "extraction"
)

// PhaseFor maps the number of logged turns to an engagement phase.
func PhaseFor(turnCount int) Phase {
	switch {
	case turnCount <= 2:
		return PhaseInitial
	case turnCount <= 4:
		return PhaseTrustBuilding
	case turnCount <= 7:
		return PhaseInfoGathering
	default:
		return PhaseExtraction
	}
}

// =========================================================================
// SCRIPTED REPLY TABLES
// =========================================================================
//
// The persona is Mrs. Kamala Devi, 67, retired teacher from Delhi.
// Tech-unsavvy, worried about money, polite but easily confused. Lines
// stay under 40 words and never break character.

var replyTables = map[Phase]map[Language][]string{
	PhaseInitial: {
		LangEnglish: {
			"Hello? Who is this? I don't think I have this number saved.",
			"Sorry, who is calling? My grandson usually handles these phone things.",
			"Oh dear, I was not expecting any message. Who are you please?",
		},
		LangHindi: {
			"नमस्ते? आप कौन बोल रहे हैं? मैंने यह नंबर नहीं पहचाना।",
			"माफ़ कीजिए, आप कौन? मेरा पोता ही फ़ोन की चीज़ें देखता है।",
		},
		LangHinglish: {
			"Hello ji? Aap kaun bol rahe hain? Number save nahi hai mere paas.",
			"Arey, kaun hai? Mera pota hi phone ka sab kaam karta hai.",
		},
	},
	PhaseTrustBuilding: {
		LangEnglish: {
			"Oh no, that sounds serious. Can you explain slowly? I get confused with these things.",
			"I am a retired teacher, I don't understand all this. What exactly is the problem?",
			"My pension comes to that account. Please tell me what has happened.",
		},
		LangHindi: {
			"अरे नहीं! यह तो गंभीर बात है। धीरे धीरे समझाइए, मुझे इन चीज़ों में उलझन होती है।",
			"मेरी पेंशन उसी खाते में आती है। कृपया बताइए क्या हुआ है।",
		},
		LangHinglish: {
			"Arey nahi! Kya hua? Thoda dheere se samjhaiye, mujhe confusion hota hai.",
			"Meri pension usi account mein aati hai ji. Kya problem hai, bataiye na.",
		},
	},
	PhaseInfoGathering: {
		LangEnglish: {
			"Wait, let me find my spectacles. Which department did you say you are from?",
			"My neighbour's son said I should always ask for an official letter. Do you have one?",
			"I am writing this down. Can you repeat the office address and your name?",
		},
		LangHindi: {
			"रुकिए, चश्मा ढूंढ़ रही हूँ। आप किस विभाग से बोल रहे हैं?",
			"मैं लिख रही हूँ। अपना नाम और दफ़्तर का पता फिर से बताइए।",
		},
		LangHinglish: {
			"Rukiye, chashma dhoond rahi hoon. Aap kaunse department se hain?",
			"Main likh rahi hoon ji. Apna naam aur office ka address phir se boliye.",
		},
	},
	PhaseExtraction: {
		LangEnglish: {
			"Alright, I will try. Where do I send the money? Give me the UPI ID or account number slowly.",
			"My grandson set up this PhonePe thing. Which number or UPI should I put in?",
			"Let me get my bank passbook. Tell me the account number and IFSC again, one digit at a time.",
		},
		LangHindi: {
			"ठीक है, कोशिश करती हूँ। पैसा कहाँ भेजना है? UPI आईडी या खाता नंबर धीरे से बताइए।",
			"पासबुक निकालती हूँ। खाता नंबर और IFSC फिर से बताइए, एक एक अंक करके।",
		},
		LangHinglish: {
			"Theek hai, koshish karti hoon. Paisa kahan bhejna hai? UPI ya account number dheere se boliye.",
			"Pota ne PhonePe set kiya tha. Kaunsa number ya UPI daalna hai ji?",
		},
	},
}

const fallbackReply = "Hello? Who is this?"

// ScriptedGenerator is the default non-LLM persona. Deterministic for a
// given history so replays and tests are stable.
type ScriptedGenerator struct{}

// NewScriptedGenerator returns the stock Kamala Devi persona.
func NewScriptedGenerator() *ScriptedGenerator { return &ScriptedGenerator{} }

// Reply picks a line from the phase and language tables. It never
// returns an error; the signature matches the Generator seam.
func (g *ScriptedGenerator) Reply(req Request) (string, error) {
	msg := Sanitize(req.Message)
	lang := DominantLanguage(req.History, msg, req.LocaleHint)
	phase := PhaseFor(len(req.History))

	lines := replyTables[phase][lang]
	if len(lines) == 0 {
		lines = replyTables[phase][LangEnglish]
	}
	if len(lines) == 0 {
		return fallbackReply, nil
	}
	return lines[agentTurns(req.History)%len(lines)], nil
}

// agentTurns counts our own lines so consecutive replies in the same
// phase rotate through the table instead of repeating.
func agentTurns(history []convo.Turn) int {
	n := 0
	for _, t := range history {
		if t.Speaker == convo.SpeakerAgent {
			n++
		}
	}
	return n
}
