package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeAnswerCleanPassthrough(t *testing.T) {
	answer := "Refunds take 5-7 business days. You can track the status in your bookings."
	assert.Equal(t, answer, SanitizeAnswer(answer, "en"))
}

func TestSanitizeAnswerDropsChannelSentences(t *testing.T) {
	answer := "Refunds take 5-7 business days. Please call us for more details."
	got := SanitizeAnswer(answer, "en")
	assert.Equal(t, "Refunds take 5-7 business days.", got)
}

func TestSanitizeAnswerAllBannedFallsBack(t *testing.T) {
	got := SanitizeAnswer("Please contact our helpline or use live chat.", "en")
	assert.Equal(t, "If this doesn't resolve it, I can create a support ticket for you here.", got)

	got = SanitizeAnswer("कृपया हमें कॉल करें।", "hi")
	assert.Equal(t, "अगर इससे समाधान नहीं होता, तो मैं यहां सपोर्ट टिकट बना सकता हूँ।", got)
}

func TestSplitSentences(t *testing.T) {
	parts := splitSentences("First one. Second one! Third?")
	assert.Equal(t, []string{"First one.", "Second one!", "Third?"}, parts)

	parts = splitSentences("रिफंड मिल जाएगा। धन्यवाद")
	assert.Equal(t, []string{"रिफंड मिल जाएगा।", "धन्यवाद"}, parts)

	assert.Nil(t, splitSentences(""))
}
