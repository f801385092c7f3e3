package classifier

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Lexical classifier for the support dialogue. Everything in this package is
// a pure function over raw message text: no side effects, no network calls.

const (
	LangEN = "en"
	LangHI = "hi"

	DecisionHindi     = "hi"
	DecisionAmbiguous = "ambiguous"
	DecisionEnglish   = "en"

	IntentRefund  = "refund"
	IntentPayment = "payment"
	IntentBooking = "booking"
)

var (
	tokenCleanRe = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)

	closingEnRe         []*regexp.Regexp
	closingNegativeEnRe []*regexp.Regexp
)

func init() {
	for _, phrase := range closingPhrasesEN {
		closingEnRe = append(closingEnRe, regexp.MustCompile(`\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	for _, phrase := range closingNegativeEN {
		closingNegativeEnRe = append(closingNegativeEnRe, regexp.MustCompile(`\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
}

// Tokenize lower-cases the text, strips punctuation and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := tokenCleanRe.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		set[tok] = true
	}
	return set
}

func hasAny(text string, words map[string]bool) bool {
	for _, tok := range Tokenize(text) {
		if words[tok] {
			return true
		}
	}
	return false
}

func isASCII(text string) bool {
	for _, r := range text {
		if r >= 128 {
			return false
		}
	}
	return true
}

// DetectScript returns "hi" when the text contains any Devanagari character.
func DetectScript(text string) string {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return LangHI
		}
	}
	return LangEN
}

// RomanHindiDecision classifies ASCII text as Romanized Hindi, ambiguous, or
// English. The thresholds are deliberately strict: an occasional Hindi-looking
// token inside an English query must not flip the language.
func RomanHindiDecision(text string) string {
	if !isASCII(text) {
		return DecisionEnglish
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return DecisionEnglish
	}
	hindiHits := 0
	englishHits := 0
	for _, tok := range tokens {
		if romanHindiFunctionWords[tok] {
			hindiHits++
		}
		if englishHintWords[tok] {
			englishHits++
		}
	}
	if hindiHits >= 2 && hindiHits >= englishHits+1 {
		return DecisionHindi
	}
	if hindiHits >= 1 && englishHits <= 1 {
		return DecisionAmbiguous
	}
	return DecisionEnglish
}

// DetectIntent returns the first matching category in priority order
// refund, payment, booking; empty string when nothing matches.
func DetectIntent(text string) string {
	if hasAny(text, refundWords) {
		return IntentRefund
	}
	if hasAny(text, paymentWords) {
		return IntentPayment
	}
	if hasAny(text, bookingWords) {
		return IntentBooking
	}
	return ""
}

// MatchesIssuePattern reports whether the message token set is a superset of
// any known bilingual issue pattern.
func MatchesIssuePattern(text string) bool {
	tokens := tokenSet(text)
	if len(tokens) == 0 {
		return false
	}
	for _, pattern := range issuePatterns {
		matched := true
		for _, word := range pattern {
			if !tokens[word] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// IsHighRisk flags refund/payment messages that match an issue pattern or
// mention a double charge.
func IsHighRisk(text string, intent string) bool {
	if intent != IntentPayment && intent != IntentRefund {
		return false
	}
	if MatchesIssuePattern(text) {
		return true
	}
	tokens := tokenSet(text)
	if tokens["charged"] && (tokens["twice"] || tokens["double"]) {
		return true
	}
	return false
}

// ExplicitSupportRequest reports whether the user is asking for a human or a
// ticket directly.
func ExplicitSupportRequest(text string) bool {
	return hasAny(text, supportRequestWords)
}

// IsClosingMessage detects a conversation-ending acknowledgement. Questions,
// support requests and "still broken" style negatives are never closings.
func IsClosingMessage(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return false
	}
	if ExplicitSupportRequest(text) {
		return false
	}
	if strings.Contains(text, "?") {
		return false
	}
	for _, re := range closingNegativeEnRe {
		if re.MatchString(lowered) {
			return false
		}
	}
	for _, phrase := range closingNegativeHI {
		if strings.Contains(text, phrase) {
			return false
		}
	}
	for _, re := range closingEnRe {
		if re.MatchString(lowered) {
			return true
		}
	}
	for _, phrase := range closingPhrasesHI {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// IsOffTopic detects queries outside the support domain so that random
// knowledge-base hits are not served as answers.
func IsOffTopic(text string) bool {
	if DetectIntent(text) != "" {
		return false
	}
	if MatchesIssuePattern(text) {
		return false
	}
	if ExplicitSupportRequest(text) {
		return false
	}
	if hasAny(text, domainWords) {
		return false
	}
	return true
}

// IsGreeting matches short salutations in either language. Word characters
// and Devanagari survive normalization; everything else is stripped.
func IsGreeting(text string) bool {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return true
	}
	if len(tokens) <= 2 {
		joined := strings.Join(tokens, "")
		if englishGreetings[joined] || hindiGreetings[joined] {
			return true
		}
	}
	for _, tok := range tokens {
		if englishGreetings[tok] || hindiGreetings[tok] {
			return true
		}
	}
	return false
}

// IsTooShort reports whether the trimmed message is below the minimum length.
// Length is counted in runes so Devanagari text is not over-counted.
func IsTooShort(text string, minLen int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minLen
}

// LanguageChoice detects an explicit language selection message and returns
// the chosen language, or empty string.
func LanguageChoice(text string) string {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	switch cleaned {
	case "english", "en":
		return LangEN
	// The bare code "hi" is excluded: it collides with the greeting.
	case "hindi", "हिंदी", "हिन्दी":
		return LangHI
	}
	return ""
}

// IsFollowup reports whether a short reply should inherit the active issue
// subtype: timeline/status keywords, any numeric token, or <=3 tokens.
func IsFollowup(text string) bool {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if followupWords[tok] {
			return true
		}
		if isDigits(tok) {
			return true
		}
	}
	return len(tokens) <= 3
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NeedsClarification decides whether a refund/payment message lacks the key
// details required before retrieval. Returns the detected intent alongside.
func NeedsClarification(text string) (bool, string) {
	intent := DetectIntent(text)
	if intent == IntentRefund || intent == IntentPayment {
		if MatchesIssuePattern(text) {
			return false, intent
		}
		details := ExtractDetails(text)
		if details.BookingId == "" && details.PaymentMethod == "" && details.Amount == "" {
			return true, intent
		}
	}
	if len(strings.Fields(text)) <= 2 && intent != "" {
		return true, intent
	}
	return false, intent
}

// GuessIssueType maps a message to a coarse ticket category label.
func GuessIssueType(text string) string {
	if hasAny(text, refundWords) {
		return "Refund"
	}
	if hasAny(text, paymentWords) {
		return "Payment"
	}
	if hasAny(text, map[string]bool{"cancel": true, "cancellation": true, "रद्द": true}) {
		return "Cancellation"
	}
	if hasAny(text, bookingWords) {
		return "Booking"
	}
	return "Support"
}

// BuildTicketSubject derives a short helpdesk subject from the latest message.
func BuildTicketSubject(text string) string {
	issue := GuessIssueType(text)
	lowered := strings.ToLower(text)
	if strings.Contains(lowered, "deduct") || strings.Contains(text, "कट") {
		return fmt.Sprintf("%s issue - amount deducted but no confirmation", issue)
	}
	if strings.Contains(lowered, "refund") || strings.Contains(text, "रिफंड") {
		return fmt.Sprintf("%s issue - refund pending", issue)
	}
	return fmt.Sprintf("%s issue", issue)
}
