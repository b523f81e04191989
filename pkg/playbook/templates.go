package playbook

// Template is a named, ordered list of characteristic phrases describing a
// known multi-step fraud script. Phrase order mirrors how the script
// typically unfolds; matching itself is order-insensitive.
type Template struct {
	ID          string
	Description string
	Phrases     []string
}

// knownTemplates are the recognized fraud scripts. Tuning note: phrases are
// matched as lowercase substrings over the whole counterparty transcript.
var knownTemplates = []Template{
	{
		ID:          "kyc_fraud",
		Description: "KYC verification fraud",
		Phrases:     []string{"account blocked", "kyc", "verify", "otp", "click link"},
	},
	{
		ID:          "lottery_scam",
		Description: "Lottery/Prize claim scam",
		Phrases:     []string{"won", "prize", "claim", "processing fee", "send money"},
	},
	{
		ID:          "refund_trap",
		Description: "Fake refund scam",
		Phrases:     []string{"refund", "verify account", "upi", "otp"},
	},
	{
		ID:          "job_fraud",
		Description: "Fake job offer scam",
		Phrases:     []string{"job offer", "salary", "registration", "fee", "payment"},
	},
	{
		ID:          "traffic_challan",
		Description: "Fake traffic fine scam",
		Phrases:     []string{"challan", "fine", "pay", "link", "court"},
	},
	{
		ID:          "tech_support",
		Description: "Fake tech support scam",
		Phrases:     []string{"virus", "computer", "remote access", "install", "teamviewer"},
	},
}

// Templates returns the known fraud script templates.
func Templates() []Template {
	return knownTemplates
}
