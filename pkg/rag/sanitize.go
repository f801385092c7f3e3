package rag

import (
	"regexp"
	"strings"
)

// Channel suggestions outside this chat are stripped from answers
// unless the whole answer survives without them.
var bannedChannelTerms = []string{
	"live chat",
	"email",
	"whatsapp",
	"call us",
	"call",
	"helpline",
	"लाइव चैट",
	"ईमेल",
	"व्हाट्सऐप",
	"वॉट्सएप",
	"कॉल",
}

var sentenceSplitRe = regexp.MustCompile(`(?:[.!?।])\s+`)

func containsBannedTerm(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range bannedChannelTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// SanitizeAnswer removes sentences that point the user at external
// support channels. If nothing survives, a canned in-chat substitute
// in the given language is returned.
func SanitizeAnswer(answer, lang string) string {
	if !containsBannedTerm(answer) {
		return answer
	}

	parts := splitSentences(strings.TrimSpace(answer))
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if !containsBannedTerm(part) {
			kept = append(kept, part)
		}
	}
	cleaned := strings.TrimSpace(strings.Join(kept, " "))
	if cleaned != "" {
		return cleaned
	}
	if lang == "hi" {
		return "अगर इससे समाधान नहीं होता, तो मैं यहां सपोर्ट टिकट बना सकता हूँ।"
	}
	return "If this doesn't resolve it, I can create a support ticket for you here."
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the preceding sentence.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}
	var parts []string
	last := 0
	for _, loc := range sentenceSplitRe.FindAllStringIndex(text, -1) {
		parts = append(parts, strings.TrimSpace(text[last:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		parts = append(parts, strings.TrimSpace(text[last:]))
	}
	return parts
}
