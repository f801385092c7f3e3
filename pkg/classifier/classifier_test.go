package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectScript(t *testing.T) {
	assert.Equal(t, LangHI, DetectScript("मेरा रिफंड कहाँ है"))
	assert.Equal(t, LangHI, DetectScript("refund कब मिलेगा"))
	assert.Equal(t, LangEN, DetectScript("where is my refund"))
	assert.Equal(t, LangEN, DetectScript(""))
}

func TestRomanHindiDecision(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"clear hindi", "mera paisa kat gaya hai", DecisionHindi},
		{"hindi function words dominate", "mujhe refund nahi mila", DecisionHindi},
		{"single hindi hint is ambiguous", "mujhe help chahiye", DecisionAmbiguous},
		{"plain english", "i want a refund for my booking", DecisionEnglish},
		{"english with domain words", "refund status for my payment", DecisionEnglish},
		{"devanagari is not roman", "मुझे रिफंड चाहिए", DecisionEnglish},
		{"empty", "", DecisionEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RomanHindiDecision(tt.text))
		})
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"refund nahi mila", IntentRefund},
		{"my payment failed", IntentPayment},
		{"booking confirmation missing", IntentBooking},
		{"रिफंड कब मिलेगा", IntentRefund},
		{"hello there", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectIntent(tt.text), tt.text)
	}
}

func TestMatchesIssuePattern(t *testing.T) {
	assert.True(t, MatchesIssuePattern("amount was deducted but no confirmation received"))
	assert.True(t, MatchesIssuePattern("पैसे कट गए"))
	assert.True(t, MatchesIssuePattern("paisa kata but ticket nahi aayi"))
	assert.False(t, MatchesIssuePattern("i love this app"))
	assert.False(t, MatchesIssuePattern(""))
}

func TestIsHighRisk(t *testing.T) {
	text := "payment failed but money deducted"
	assert.True(t, IsHighRisk(text, DetectIntent(text)))

	text = "i was charged twice on my card"
	assert.True(t, IsHighRisk(text, DetectIntent(text)))

	// Booking issues are not payment-risk even when they match a pattern.
	text = "show cancelled"
	assert.False(t, IsHighRisk(text, DetectIntent(text)))

	text = "refund"
	assert.False(t, IsHighRisk(text, DetectIntent(text)))
}

func TestExplicitSupportRequest(t *testing.T) {
	assert.True(t, ExplicitSupportRequest("i want to talk to an agent"))
	assert.True(t, ExplicitSupportRequest("मुझे सपोर्ट चाहिए"))
	assert.False(t, ExplicitSupportRequest("my refund is late"))
}

func TestIsClosingMessage(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"simple thanks", "thanks, that helps", true},
		{"resolved", "resolved, all good", true},
		{"hindi thanks", "धन्यवाद", true},
		{"negated closing", "thanks but still not working", false},
		{"question is not closing", "thanks, but when will I get it?", false},
		{"support request is not closing", "thanks, connect me to an agent", false},
		{"hindi negative", "धन्यवाद लेकिन समस्या है", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsClosingMessage(tt.text))
		})
	}
}

func TestIsOffTopic(t *testing.T) {
	assert.True(t, IsOffTopic("what is the weather like"))
	assert.False(t, IsOffTopic("refund status"))
	assert.False(t, IsOffTopic("payment failed"))
	assert.False(t, IsOffTopic("i need an agent"))
	assert.False(t, IsOffTopic("पैसे कट गए"))
}

func TestIsGreeting(t *testing.T) {
	assert.True(t, IsGreeting("hi"))
	assert.True(t, IsGreeting("good morning"))
	assert.True(t, IsGreeting("नमस्ते"))
	assert.True(t, IsGreeting("   "))
	assert.False(t, IsGreeting("my payment failed"))
}

func TestIsTooShort(t *testing.T) {
	assert.True(t, IsTooShort("hi", 6))
	assert.True(t, IsTooShort("  ab ", 6))
	assert.False(t, IsTooShort("refund help", 6))

	// Devanagari: length is runes, not bytes.
	assert.True(t, IsTooShort("रिफंड", 6))
	assert.False(t, IsTooShort("रिफंड कब मिलेगा", 6))
}

func TestLanguageChoice(t *testing.T) {
	assert.Equal(t, LangEN, LanguageChoice("English"))
	assert.Equal(t, LangEN, LanguageChoice(" en "))
	assert.Equal(t, LangHI, LanguageChoice("हिंदी"))
	assert.Equal(t, LangHI, LanguageChoice("Hindi"))
	assert.Equal(t, "", LanguageChoice("i prefer tea"))
}

func TestIsFollowup(t *testing.T) {
	assert.True(t, IsFollowup("kab tak milega"))
	assert.True(t, IsFollowup("status?"))
	assert.True(t, IsFollowup("5 days ho gaye"))
	assert.True(t, IsFollowup("ok sure"))
	assert.False(t, IsFollowup("my refund for the cancelled movie has not arrived yet"))
	assert.False(t, IsFollowup(""))
}

func TestNeedsClarification(t *testing.T) {
	needs, intent := NeedsClarification("refund")
	assert.True(t, needs)
	assert.Equal(t, IntentRefund, intent)

	needs, intent = NeedsClarification("payment failed")
	assert.False(t, needs)
	assert.Equal(t, IntentPayment, intent)

	needs, _ = NeedsClarification("refund for booking BK12345678")
	assert.False(t, needs)

	needs, intent = NeedsClarification("what movies are showing")
	assert.False(t, needs)
	assert.Equal(t, "", intent)
}

func TestGuessIssueType(t *testing.T) {
	assert.Equal(t, "Refund", GuessIssueType("refund not received"))
	assert.Equal(t, "Payment", GuessIssueType("payment declined"))
	assert.Equal(t, "Cancellation", GuessIssueType("how do i cancel my order"))
	assert.Equal(t, "Booking", GuessIssueType("booking confirmation"))
	assert.Equal(t, "Support", GuessIssueType("something else entirely"))
}

func TestBuildTicketSubject(t *testing.T) {
	assert.Equal(t, "Refund issue - refund pending", BuildTicketSubject("refund not received"))
	assert.Equal(t, "Support issue - amount deducted but no confirmation", BuildTicketSubject("amount got deducted twice"))
	assert.Equal(t, "Booking issue", BuildTicketSubject("booking not visible"))
}
