package classifier

import (
	"errors"
	"regexp"
	"strings"

	"ai-support-chat-be/pkg/store"
)

// Best-effort text mining for contact details and ticket summaries. These are
// isolated pure functions returning optional structured fields; the policy
// engine treats empty results as "not provided".

var (
	emailRe       = regexp.MustCompile(`[^@\s]+@[^@\s]+\.[^@\s]+`)
	strictEmailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nonDigitRe    = regexp.MustCompile(`\D`)
	nameLabelRe   = regexp.MustCompile(`(?i)(?:name|naam)\s*[:=]\s*([A-Za-z]{2,30})`)
	namePhraseRe  = regexp.MustCompile(`(?i)(?:my name is|i am|i'm)\s+([A-Za-z]{2,20})`)

	bookingIdRe     = regexp.MustCompile(`\b[A-Za-z]{1,3}\d{6,12}\b`)
	transactionIdRe = regexp.MustCompile(`(?i)\b(?:txn|transaction)[-_\s]?\w{4,}\b`)
	amountRe        = regexp.MustCompile(`(?i)(₹\s?\d{2,6}|\b\d{2,6}\s?(?:rs|inr|rupees)\b)`)
	dateRe          = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	locationEnRe    = regexp.MustCompile(`(?i)\b(?:in|at)\s+([A-Za-z]{3,20})\b`)
	locationHiRe    = regexp.MustCompile(`में\s+([^\s]{2,20})`)
)

var (
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrInvalidPhone   = errors.New("invalid phone number")
	ErrContactMissing = errors.New("email or phone is required to create a ticket")
)

// Contact holds customer identification extracted from chat input.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// ExtractContact pulls an email, a >=10 digit phone number and optionally a
// name out of a free-form message.
func ExtractContact(text string) Contact {
	var contact Contact
	if m := emailRe.FindString(text); m != "" {
		contact.Email = m
	}
	digits := nonDigitRe.ReplaceAllString(text, "")
	if len(digits) >= 10 {
		contact.Phone = digits
	}
	if m := nameLabelRe.FindStringSubmatch(text); m != nil {
		contact.Name = m[1]
	}
	if m := namePhraseRe.FindStringSubmatch(text); m != nil {
		contact.Name = m[1]
	}
	return contact
}

// NormalizeContact trims and validates contact fields. At least one of email
// or phone must survive validation.
func NormalizeContact(name, email, phone string) (Contact, error) {
	out := Contact{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	digits := nonDigitRe.ReplaceAllString(strings.TrimSpace(phone), "")
	out.Phone = digits

	if out.Email != "" && !strictEmailRe.MatchString(out.Email) {
		return Contact{}, ErrInvalidEmail
	}
	if out.Phone != "" && len(out.Phone) < 10 {
		return Contact{}, ErrInvalidPhone
	}
	if out.Email == "" && out.Phone == "" {
		return Contact{}, ErrContactMissing
	}
	return out, nil
}

// Details carries issue attributes mined from the latest user message.
type Details struct {
	BookingId     string
	TransactionId string
	PaymentMethod string
	Amount        string
	DateTime      string
	Location      string
}

// ExtractDetails performs lightweight entity extraction for ticket summaries.
func ExtractDetails(text string) Details {
	var d Details

	if m := bookingIdRe.FindString(text); m != "" {
		d.BookingId = m
	}
	if m := transactionIdRe.FindString(text); m != "" {
		d.TransactionId = m
	}
	if m := amountRe.FindString(text); m != "" {
		d.Amount = m
	}

	switch {
	case hasAny(text, map[string]bool{"upi": true, "यूपीआई": true}):
		d.PaymentMethod = "UPI"
	case hasAny(text, map[string]bool{"card": true, "credit": true, "debit": true, "कार्ड": true}):
		d.PaymentMethod = "Card"
	case hasAny(text, map[string]bool{"netbanking": true, "bank": true}):
		d.PaymentMethod = "Netbanking"
	case hasAny(text, map[string]bool{"wallet": true, "paytm": true, "gpay": true, "phonepe": true}):
		d.PaymentMethod = "Wallet"
	}

	if m := dateRe.FindString(text); m != "" {
		d.DateTime = m
	} else if hasAny(text, map[string]bool{"today": true, "yesterday": true, "आज": true, "कल": true}) {
		d.DateTime = "relative date mentioned"
	}

	if m := locationEnRe.FindStringSubmatch(text); m != nil {
		d.Location = m[1]
	}
	if m := locationHiRe.FindStringSubmatch(text); m != nil {
		d.Location = m[1]
	}

	return d
}

// ExtractNameFromHistory infers the customer's name from earlier turns:
// either the short reply to a name prompt, or an explicit "my name is".
func ExtractNameFromHistory(history []store.Turn) string {
	promptMarkers := []string{
		"what’s your name",
		"what's your name",
		"आपका नाम क्या है",
		"आपका नाम",
	}
	for i, turn := range history {
		if turn.Role != store.RoleAssistant {
			continue
		}
		content := strings.ToLower(turn.Content)
		marked := false
		for _, marker := range promptMarkers {
			if strings.Contains(content, marker) {
				marked = true
				break
			}
		}
		if !marked {
			continue
		}
		for _, next := range history[i+1:] {
			if next.Role != store.RoleUser {
				continue
			}
			candidate := strings.TrimSpace(next.Content)
			if candidate == "" {
				continue
			}
			// Accept a short standalone response as a name.
			if len(candidate) >= 2 && len(candidate) <= 30 && len(strings.Fields(candidate)) <= 2 {
				return candidate
			}
			break
		}
	}
	for _, turn := range history {
		if turn.Role != store.RoleUser {
			continue
		}
		if m := namePhraseRe.FindStringSubmatch(turn.Content); m != nil {
			return m[1]
		}
	}
	return ""
}
