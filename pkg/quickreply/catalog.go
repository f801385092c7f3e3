package quickreply

import "strings"

// Option maps a pre-authored short label to an issue classification and a
// fully-specified canonical query used to normalize ambiguous follow-ups into
// high-recall retrieval queries.
type Option struct {
	Label     string
	Category  string
	Subtype   string
	Canonical string
}

// Immutable language-keyed catalogue, loaded once at startup.
var catalog = map[string][]Option{
	"en": {
		{
			Label:     "Amount deducted but no confirmation",
			Category:  "payment",
			Subtype:   "deducted_no_confirmation",
			Canonical: "Transaction didn't go through and seats appeared to be blocked. Payment deducted but no confirmation. What should I do?",
		},
		{
			Label:     "Refund not received yet",
			Category:  "refund",
			Subtype:   "refund_not_received",
			Canonical: "Refund not received yet. What is the refund timeline and when should it reflect?",
		},
		{
			Label:     "Show cancelled",
			Category:  "refund",
			Subtype:   "show_cancelled",
			Canonical: "Show cancelled. What is the refund process and timeline?",
		},
		{
			Label:     "Wrong amount / discount not applied",
			Category:  "payment",
			Subtype:   "wrong_amount_discount",
			Canonical: "Wrong amount or discount not applied. How can I fix this?",
		},
	},
	"hi": {
		{
			Label:     "पैसे कट गए लेकिन कन्फर्मेशन नहीं आया",
			Category:  "payment",
			Subtype:   "deducted_no_confirmation",
			Canonical: "ट्रांजैक्शन पूरा नहीं हुआ और सीट्स ब्लॉक दिख रही हैं। पैसे कट गए लेकिन कन्फर्मेशन नहीं आया। आगे क्या करना चाहिए?",
		},
		{
			Label:     "रिफंड अभी तक नहीं मिला",
			Category:  "refund",
			Subtype:   "refund_not_received",
			Canonical: "रिफंड अभी तक नहीं मिला। रिफंड का समय कितना होता है और कब तक दिखेगा?",
		},
		{
			Label:     "शो कैंसिल हुआ",
			Category:  "refund",
			Subtype:   "show_cancelled",
			Canonical: "शो कैंसिल हुआ है। रिफंड प्रोसेस और टाइमलाइन क्या है?",
		},
		{
			Label:     "गलत अमाउंट / डिस्काउंट नहीं मिला",
			Category:  "payment",
			Subtype:   "wrong_amount_discount",
			Canonical: "गलत अमाउंट कट गया या डिस्काउंट नहीं मिला। इसे कैसे ठीक करें?",
		},
	},
}

// Labels returns the quick-reply labels for a language, falling back to
// English for unknown languages.
func Labels(lang string) []string {
	options, ok := catalog[lang]
	if !ok {
		options = catalog["en"]
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	return labels
}

// Match finds the catalogue option whose label equals the message exactly
// (case-insensitive, trimmed), across both languages.
func Match(message string) *Option {
	cleaned := strings.ToLower(strings.TrimSpace(message))
	for _, lang := range []string{"en", "hi"} {
		for i := range catalog[lang] {
			opt := catalog[lang][i]
			if cleaned == strings.ToLower(strings.TrimSpace(opt.Label)) {
				return &opt
			}
		}
	}
	return nil
}

// ExpandQuery maps an active subtype back to its canonical query. Follow-up
// messages are appended so the user's specifics still reach retrieval; other
// messages are replaced entirely by the canonical text.
func ExpandQuery(subtype, message, lang string, isFollowup bool) string {
	options := append(append([]Option{}, catalog[lang]...), catalog["en"]...)
	for _, opt := range options {
		if opt.Subtype == subtype {
			if isFollowup {
				return opt.Canonical + " " + message
			}
			return opt.Canonical
		}
	}
	return message
}
