package scoring

// =============================================================================
// SCORING TABLES
// Fixed keyword families, weights and context vocabularies. The per-family
// weights intentionally sum past 1.0 when everything fires; stacking is the
// point, and the final score is clamped.
// =============================================================================

// Indicator tags produced by the scorer.
const (
	TagUrgency     = "urgency"
	TagThreat      = "threat"
	TagAuthority   = "authority_impersonation"
	TagPayment     = "payment_request"
	TagCredential  = "credential_request"
	TagPrize       = "prize_offer"
	TagLink        = "suspicious_link"
	TagHandle      = "contains_upi"
	TagPhone       = "contains_phone"
	TagBankAccount = "contains_bank_account"
)

// family is one keyword family with its confidence weight.
type family struct {
	tag     string
	weight  float64
	phrases []string
}

// keywordFamilies are checked in order; each hit adds its tag and weight.
var keywordFamilies = []family{
	{TagUrgency, 0.15, []string{
		"urgent", "immediately", "right now", "hurry", "last chance",
		"expire", "act now", "quickly", "fast", "within 24 hours",
		"turant", "abhi", "jaldi", "foren",
	}},
	{TagThreat, 0.20, []string{
		"blocked", "suspended", "terminated", "deactivated", "frozen",
		"illegal", "arrested", "police", "legal action",
		"band ho jayega", "block ho gaya", "arrest", "kanoon",
	}},
	{TagAuthority, 0.15, []string{
		"bank manager", "rbi", "reserve bank", "government", "income tax",
		"official", "security team", "customer care", "officer",
		"sarkari", "adhikari", "bank wale",
	}},
	{TagPayment, 0.25, []string{
		"send money", "transfer", "pay now", "payment", "deposit",
		"₹", "rupees", "rs.", "inr", "fee", "paisa bhejo", "payment karo",
	}},
	{TagCredential, 0.20, []string{
		"otp", "pin", "cvv", "password", "card number", "account number",
		"aadhaar", "pan card", "share details", "otp batao", "pin batao",
	}},
	{TagPrize, 0.15, []string{
		"winner", "won", "prize", "lottery", "lucky", "congratulations",
		"reward", "gift", "bonus", "jeet gaye", "inaam",
	}},
}

// Entity-presence weights, applied when the extractor finds at least one
// instance in the message.
const (
	weightLink        = 0.20
	weightHandle      = 0.10
	weightPhone       = 0.05
	weightBankAccount = 0.10
)

// contextRule adjusts the running score when any of its words appear.
// delta is negative for safe contexts and positive for amplifying ones.
type contextRule struct {
	name  string
	delta float64
	words []string
}

// safeContexts reduce the score; ordinary personal and routine conversation
// shares vocabulary with scam scripts and should not trip the detector.
var safeContexts = []contextRule{
	{"personal", -0.15, []string{
		"mom", "amma", "dad", "papa", "family", "son", "daughter",
		"husband", "wife", "grandma",
	}},
	{"institutional", -0.10, []string{
		"doctor", "hospital", "school", "college", "temple", "church", "clinic",
	}},
	{"routine", -0.08, []string{
		"meeting", "dinner", "lunch", "birthday", "wedding", "exam", "shopping",
	}},
}

// amplifyingContexts raise the score; isolation demands and hard deadlines
// are strong scam tells regardless of other content.
var amplifyingContexts = []contextRule{
	{"isolation", 0.20, []string{
		"don't tell anyone", "secret", "confidential", "just between us",
		"nobody should know", "kisiko mat batana", "private hai",
	}},
	{"deadline", 0.15, []string{
		"within 1 hour", "before 5pm", "today only", "last chance",
		"final warning", "aakhri mauka", "abhi ke abhi",
	}},
}

// History recurrence: a small bonus when pressure language repeats across
// prior counterparty turns.
const (
	historyBonus          = 0.10
	historyMinRecurrences = 2
)

// historyUrgencyPhrases is the leading slice of the urgency family used for
// recurrence checks across turns.
var historyUrgencyPhrases = []string{"urgent", "immediately", "right now", "hurry", "last chance"}

// historyPaymentPhrases are the payment verbs used for recurrence checks.
var historyPaymentPhrases = []string{"send", "pay", "transfer"}
