package intel

// =============================================================================
// LEXICON DATA
// Fixed allow-lists and keyword tables used by the extractors. Pure data,
// kept apart from the matching logic so tuning never touches code paths.
// =============================================================================

// handleDomains is the allow-list of instant-payment (UPI) handle domains.
var handleDomains = map[string]bool{
	"paytm": true, "ybl": true, "oksbi": true, "okaxis": true,
	"okhdfcbank": true, "okicici": true, "upi": true, "gpay": true,
	"phonepe": true, "apl": true, "rapl": true, "ibl": true, "sbi": true,
	"axisbank": true, "hdfcbank": true, "icici": true, "kotak": true,
	"indus": true, "yesbank": true, "rbl": true, "federal": true,
	"boi": true, "pnb": true, "canara": true, "unionbank": true,
	"idfcbank": true, "aubank": true, "jupiteraxis": true,
	"freecharge": true, "amazonpay": true, "airtel": true, "jio": true,
	"postbank": true, "dbs": true, "hsbc": true, "citi": true,
	"abfspay": true, "axl": true, "barodampay": true, "centralbank": true,
	"cub": true, "dlb": true, "equitas": true, "ezeepay": true,
	"fbl": true, "finobank": true, "idfcfirst": true, "ikwik": true,
	"imobile": true, "iob": true, "jkb": true, "karb": true,
	"kaypay": true, "kbl": true, "kvb": true, "lvb": true, "mahb": true,
	"obc": true, "okbizaxis": true, "payzapp": true, "psb": true,
	"rajgovhdfcbank": true, "rblbank": true, "sib": true, "srcb": true,
	"tmb": true, "ubi": true, "uboi": true, "uco": true, "vijb": true,
	"yapl": true,
}

// mailDomains are generic mail providers; a handle-shaped token at one of
// these is an email address, not a payment handle.
var mailDomains = map[string]bool{
	"gmail": true, "yahoo": true, "hotmail": true, "outlook": true,
	"email": true, "mail": true, "proton": true, "protonmail": true,
	"icloud": true, "aol": true, "rediff": true, "live": true,
	"zoho": true, "yandex": true, "inbox": true, "fastmail": true,
	"tutanota": true, "gmx": true, "mailinator": true, "tempmail": true,
	"guerrillamail": true,
}

// shortenerDomains are link shorteners recognized even without a scheme.
var shortenerDomains = []string{
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "short.link",
	"cutt.ly", "rebrand.ly", "is.gd", "v.gd", "shorturl.at",
	"tiny.cc", "bc.vc", "ow.ly", "buff.ly",
}

// stopWords are common English words that end up in the local-part position
// after the normalizer rewrites "at" to "@" in ordinary prose.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"if": true, "in": true, "is": true, "it": true, "me": true,
	"my": true, "of": true, "on": true, "or": true, "so": true,
	"the": true, "this": true, "that": true, "to": true, "was": true,
	"we": true, "you": true,
}

// scamKeywords is the English half of the fraud lexicon, matched as
// case-insensitive substrings.
var scamKeywords = []string{
	// Urgency
	"urgent", "immediately", "now", "today", "expire", "hurry",
	"last chance", "final notice", "act now", "don't delay",

	// Threats
	"blocked", "suspended", "terminated", "deactivated", "frozen",
	"illegal", "fraud detected", "unauthorized", "security alert",

	// Authority
	"bank manager", "rbi", "reserve bank", "police", "cyber cell",
	"income tax", "government", "official", "verified",

	// Money/Payment
	"verify", "confirm", "update", "link aadhaar", "kyc",
	"transfer", "send money", "pay now", "refund", "cashback",

	// Prizes/Offers
	"winner", "congratulations", "prize", "lottery", "lucky",
	"selected", "reward", "gift", "free", "bonus",

	// Requests
	"click here", "click link", "otp", "pin", "cvv", "password",
	"card number", "account number", "share details",
}

// hinglishKeywords is the romanized-Hindi half of the fraud lexicon.
var hinglishKeywords = []string{
	"turant", "abhi", "jaldi", "bank khata", "paisa bhejo",
	"verify karo", "block ho jayega", "aapka account",
	"otp batao", "pin batao", "jaldi karo", "paise do",
	"band ho jayega", "foren", "fatafat",
}
