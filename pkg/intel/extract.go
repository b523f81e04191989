// Package intel classifies structured financial and contact items out of raw
// scammer text: payment handles, bank accounts, phone numbers, routing
// codes, links, emails and fraud-lexicon keywords.
//
// Design principles:
//   - COMPILE ONCE: all regexes live in patterns.go, compiled at init
//   - INDEPENDENT CATEGORIES: a fault in one extractor never blocks the rest
//   - BOUNDED INPUT: text is capped before any pattern runs
package intel

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lurebox/lurebox/pkg/logger"
)

// Extract runs every category extractor over the text and returns one
// Bundle. Empty or malformed text yields the zero Bundle, never an error.
func Extract(text string) Bundle {
	text = capText(text)
	if text == "" {
		return Bundle{}
	}

	var b Bundle
	safely("payment_handles", func() { b.PaymentHandles = findPaymentHandles(text) })
	safely("bank_accounts", func() { b.BankAccounts = findBankAccounts(text) })
	safely("phone_numbers", func() { b.PhoneNumbers = findPhoneNumbers(text) })
	safely("routing_codes", func() { b.RoutingCodes = findRoutingCodes(text) })
	safely("urls", func() { b.URLs = findURLs(text) })
	safely("emails", func() { b.EmailAddresses = findEmails(text) })
	safely("keywords", func() { b.Keywords = findKeywords(text) })
	return b
}

// safely confines a category extractor fault to that category. The
// remaining categories still run; the failed one contributes nothing.
func safely(category string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("extractor category fault",
				zap.String("category", category),
				zap.Any("panic", r))
		}
	}()
	fn()
}

// findPaymentHandles extracts UPI-style payment handles. A local@domain
// token qualifies when the domain is a known handle domain, contains a
// known handle domain as a substring, or contains "bank" without being a
// generic mail provider. Stop-word local-parts are rejected; those are
// artifacts of the "at" -> "@" normalization.
func findPaymentHandles(text string) []string {
	found := make(map[string]struct{})
	for _, m := range reHandle.FindAllString(text, -1) {
		local, domain, ok := strings.Cut(strings.ToLower(m), "@")
		if !ok || stopWords[local] {
			continue
		}
		if acceptHandleDomain(domain) {
			found[local+"@"+domain] = struct{}{}
		}
	}
	return setToSorted(found)
}

func acceptHandleDomain(domain string) bool {
	if handleDomains[domain] {
		return true
	}
	for d := range handleDomains {
		if strings.Contains(domain, d) {
			return true
		}
	}
	if strings.Contains(domain, "bank") && !mailDomains[domain] {
		return true
	}
	return false
}

// findBankAccounts extracts 9-18 digit account numbers, excluding runs
// that collide with other shapes: Indian mobile numbers, bare 8-digit
// dates, and 13-digit millisecond timestamps. The exclusions trade false
// negatives for precision.
func findBankAccounts(text string) []string {
	found := make(map[string]struct{})
	for _, m := range reAccount.FindAllString(text, -1) {
		if len(m) == 10 && m[0] >= '6' && m[0] <= '9' {
			continue // phone shape
		}
		if len(m) == 8 {
			continue // DDMMYYYY / YYYYMMDD
		}
		if len(m) == 13 && m[0] == '1' {
			continue // epoch millis
		}
		found[m] = struct{}{}
	}
	return setToSorted(found)
}

// findPhoneNumbers extracts 10-digit Indian mobile numbers.
func findPhoneNumbers(text string) []string {
	found := make(map[string]struct{})
	for _, m := range rePhone.FindAllString(text, -1) {
		found[m] = struct{}{}
	}
	return setToSorted(found)
}

// findRoutingCodes extracts IFSC codes, normalized to uppercase.
func findRoutingCodes(text string) []string {
	found := make(map[string]struct{})
	for _, m := range reRouting.FindAllString(text, -1) {
		found[strings.ToUpper(m)] = struct{}{}
	}
	return setToSorted(found)
}

// findURLs extracts scheme-qualified links plus known shortener links
// lacking a scheme, which get "https://" synthesized. Trailing punctuation
// is stripped.
func findURLs(text string) []string {
	found := make(map[string]struct{})

	add := func(url string) {
		url = strings.TrimRight(url, `.,;:!?)]>'"`)
		if url != "" {
			found[url] = struct{}{}
		}
	}

	for _, m := range reURL.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range reShortURL.FindAllString(text, -1) {
		if !strings.HasPrefix(strings.ToLower(m), "http") {
			m = "https://" + m
		}
		add(m)
	}
	return setToSorted(found)
}

// findEmails extracts email addresses, excluding any whose domain matches
// or contains a known payment-handle domain; those are UPI handles that
// happen to carry a TLD-looking suffix.
func findEmails(text string) []string {
	found := make(map[string]struct{})
	for _, m := range reEmail.FindAllString(text, -1) {
		email := strings.ToLower(m)
		_, domain, ok := strings.Cut(email, "@")
		if !ok {
			continue
		}
		base, _, _ := strings.Cut(domain, ".")
		if handleDomainLike(base) {
			continue
		}
		found[email] = struct{}{}
	}
	return setToSorted(found)
}

func handleDomainLike(base string) bool {
	if handleDomains[base] {
		return true
	}
	for d := range handleDomains {
		if strings.Contains(base, d) {
			return true
		}
	}
	return false
}

// findKeywords returns the distinct fraud-lexicon entries present in the
// text, matched case-insensitively as substrings.
func findKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, kw := range scamKeywords {
		if strings.Contains(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	for _, kw := range hinglishKeywords {
		if strings.Contains(lower, kw) {
			found[kw] = struct{}{}
		}
	}
	return setToSorted(found)
}
