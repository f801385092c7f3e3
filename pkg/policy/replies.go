package policy

import (
	"fmt"
	"strings"

	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/quickreply"
	"ai-support-chat-be/pkg/store"
)

func GreetingReply(lang string) string {
	if lang == classifier.LangHI {
		return "नमस्ते! मैं आपकी बुकिंग, रिफंड, या पेमेंट से जुड़ी मदद कर सकता हूँ। आप किस बारे में पूछना चाहेंगे?"
	}
	return "Hi! I can help with bookings, refunds, or payments. What would you like to know?"
}

func ClosingReply(lang string) string {
	if lang == classifier.LangHI {
		return "धन्यवाद! BookYourShow में मदद करने का अवसर देने के लिए आभारी हूँ। अगर आगे कोई सहायता चाहिए, तो बेझिझक बताइए।"
	}
	return "Thank you for choosing BookYourShow! I’m glad I could help. If you need anything else, just let me know."
}

func ShortReply(lang string) string {
	if lang == classifier.LangHI {
		return "कृपया थोड़ा और विवरण दें ताकि मैं बेहतर मदद कर सकूँ।"
	}
	return "Please share a bit more detail so I can help better."
}

func ClarifyReply(lang string) string {
	if lang == classifier.LangHI {
		return "मैं पूरी तरह सुनिश्चित नहीं हूँ। कृपया थोड़ा और विवरण दें। चाहें तो आप टिकट भी बना सकते हैं।"
	}
	return "I’m not fully sure. Could you share a bit more detail? You can also create a ticket."
}

func LanguagePreferencePrompt(lang string) (string, []string) {
	if lang == classifier.LangHI {
		return "आप हिंदी या English में किस भाषा में जवाब चाहते हैं?", []string{"हिंदी", "English"}
	}
	return "Do you prefer English or Hindi?", []string{"English", "Hindi"}
}

func LanguageAck(lang string) string {
	if lang == classifier.LangHI {
		return "ठीक है, मैं हिंदी में जवाब दूंगा।"
	}
	return "Got it. I will respond in English."
}

// ClarifyRefundPayment returns the targeted refund/payment clarification
// question with its quick reply options.
func ClarifyRefundPayment(lang string) (string, []string) {
	if lang == classifier.LangHI {
		return "कृपया बताएं, समस्या किस तरह की है?", quickreply.Labels(classifier.LangHI)
	}
	return "Could you share which issue you are facing?", quickreply.Labels(classifier.LangEN)
}

func DetailPrompt(lang string) string {
	if lang == classifier.LangHI {
		return "कृपया बुकिंग ID, भुगतान विधि और तारीख/समय बताएं ताकि मैं सही मदद कर सकूँ।"
	}
	return "Please share your Booking ID, payment method, and date/time so I can help accurately."
}

func OfferTicketPrompt(lang string) string {
	if lang == classifier.LangHI {
		return "मैं अभी इसे पुष्टि नहीं कर पाया। क्या आप चाहते हैं कि मैं सपोर्ट टिकट बना दूँ?"
	}
	return "I couldn't confirm this from the knowledge base. Would you like me to create a support ticket?"
}

func ContactRequestPrompt(lang string) string {
	if lang == classifier.LangHI {
		return "टिकट बनाने के लिए कृपया अपना ईमेल या फोन नंबर चैट में लिखें (इनमें से कोई एक)."
	}
	return "To create a support ticket, please type your email or phone number here in chat (either one is enough)."
}

func TicketCreatedReply(lang string, ticketId string) string {
	if lang == classifier.LangHI {
		if ticketId != "" {
			return fmt.Sprintf("🎫 आपका टिकट बन गया है: #%s. हमारी टीम 24 घंटे के भीतर आपसे संपर्क करेगी।", ticketId)
		}
		return "टिकट बनाने में समस्या हुई। कृपया थोड़ी देर बाद फिर से प्रयास करें।"
	}
	if ticketId != "" {
		return fmt.Sprintf("Ticket created. Your ticket ID is #%s. Our agent will contact you within 24 hours.", ticketId)
	}
	return "Unable to create a ticket right now. Please try again later."
}

// clarificationPhrases identify prior clarification prompts in history
// so attempts survive session metadata loss.
var clarificationPhrases = []string{
	"Could you share which issue you are facing?",
	"कृपया बताएं, समस्या किस तरह की है?",
	"Please share your Booking ID, payment method, and date/time",
	"कृपया बुकिंग ID, भुगतान विधि और तारीख/समय बताएं",
	"I’m not fully sure. Could you share a bit more detail? You can also create a ticket.",
	"मैं पूरी तरह सुनिश्चित नहीं हूँ। कृपया थोड़ा और विवरण दें। चाहें तो आप टिकट भी बना सकते हैं।",
}

// CountClarificationPrompts counts how many assistant turns in history
// were clarification prompts.
func CountClarificationPrompts(history []store.Turn) int {
	count := 0
	for _, turn := range history {
		if turn.Role != store.RoleAssistant {
			continue
		}
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		for _, phrase := range clarificationPhrases {
			if strings.Contains(content, phrase) {
				count++
				break
			}
		}
	}
	return count
}
