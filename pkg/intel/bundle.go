package intel

import (
	"fmt"
	"sort"
	"strings"
)

// Bundle holds the structured items extracted from scammer text, one
// deduplicated, sorted set per category. The zero value is the empty bundle
// and is the identity element for Merge.
type Bundle struct {
	PaymentHandles []string `json:"paymentHandles"`
	BankAccounts   []string `json:"bankAccounts"`
	PhoneNumbers   []string `json:"phoneNumbers"`
	RoutingCodes   []string `json:"routingCodes"`
	URLs           []string `json:"urls"`
	EmailAddresses []string `json:"emailAddresses"`
	Keywords       []string `json:"keywords"`
}

// Merge returns the category-wise set union of b and other. The operation is
// commutative, associative and idempotent; merging with the zero Bundle
// returns an equal Bundle.
func (b Bundle) Merge(other Bundle) Bundle {
	return Bundle{
		PaymentHandles: unionSorted(b.PaymentHandles, other.PaymentHandles),
		BankAccounts:   unionSorted(b.BankAccounts, other.BankAccounts),
		PhoneNumbers:   unionSorted(b.PhoneNumbers, other.PhoneNumbers),
		RoutingCodes:   unionSorted(b.RoutingCodes, other.RoutingCodes),
		URLs:           unionSorted(b.URLs, other.URLs),
		EmailAddresses: unionSorted(b.EmailAddresses, other.EmailAddresses),
		Keywords:       unionSorted(b.Keywords, other.Keywords),
	}
}

// HighValueCount counts actionable structured items: every category except
// matched keywords. This is the quantity that gates escalation.
func (b Bundle) HighValueCount() int {
	return len(b.PaymentHandles) + len(b.BankAccounts) + len(b.PhoneNumbers) +
		len(b.RoutingCodes) + len(b.URLs) + len(b.EmailAddresses)
}

// Empty reports whether no category holds any item.
func (b Bundle) Empty() bool {
	return b.HighValueCount() == 0 && len(b.Keywords) == 0
}

// Summary renders the actionable categories as a compact human-readable
// line for report notes, e.g. "UPI IDs: fraud@paytm | Phones: 9876543210".
func (b Bundle) Summary() string {
	var parts []string
	if len(b.PaymentHandles) > 0 {
		parts = append(parts, fmt.Sprintf("UPI IDs: %s", strings.Join(b.PaymentHandles, ", ")))
	}
	if len(b.BankAccounts) > 0 {
		parts = append(parts, fmt.Sprintf("Bank Accounts: %s", strings.Join(b.BankAccounts, ", ")))
	}
	if len(b.PhoneNumbers) > 0 {
		parts = append(parts, fmt.Sprintf("Phone Numbers: %s", strings.Join(b.PhoneNumbers, ", ")))
	}
	if len(b.RoutingCodes) > 0 {
		parts = append(parts, fmt.Sprintf("IFSC Codes: %s", strings.Join(b.RoutingCodes, ", ")))
	}
	if len(b.URLs) > 0 {
		parts = append(parts, fmt.Sprintf("Links: %s", strings.Join(b.URLs, ", ")))
	}
	if len(b.EmailAddresses) > 0 {
		parts = append(parts, fmt.Sprintf("Emails: %s", strings.Join(b.EmailAddresses, ", ")))
	}
	if len(parts) == 0 {
		return "No actionable intelligence extracted"
	}
	return strings.Join(parts, " | ")
}

// unionSorted merges two string slices into a deduplicated sorted slice.
// Returns nil for an empty union so zero-value bundles stay comparable.
func unionSorted(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// setToSorted converts a membership set into the canonical slice form used
// by Bundle categories.
func setToSorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
