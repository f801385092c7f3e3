package classifier

import (
	"testing"

	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestExtractContact(t *testing.T) {
	contact := ExtractContact("my name is Rahul, email rahul@example.com, phone 9876543210")
	assert.Equal(t, "Rahul", contact.Name)
	assert.Equal(t, "rahul@example.com", contact.Email)
	assert.Equal(t, "9876543210", contact.Phone)

	contact = ExtractContact("reach me at priya.s@mail.in")
	assert.Equal(t, "priya.s@mail.in", contact.Email)
	assert.Empty(t, contact.Phone)

	contact = ExtractContact("just some text")
	assert.Empty(t, contact.Email)
	assert.Empty(t, contact.Phone)
	assert.Empty(t, contact.Name)
}

func TestNormalizeContact(t *testing.T) {
	contact, err := NormalizeContact("Rahul", " Rahul@Example.com ", "")
	assert.NoError(t, err)
	assert.Equal(t, "rahul@example.com", contact.Email)

	contact, err = NormalizeContact("", "", "+91 98765-43210")
	assert.NoError(t, err)
	assert.Equal(t, "919876543210", contact.Phone)

	_, err = NormalizeContact("", "not-an-email", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NormalizeContact("", "", "12345")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizeContact("Rahul", "", "")
	assert.ErrorIs(t, err, ErrContactMissing)
}

func TestExtractDetails(t *testing.T) {
	d := ExtractDetails("₹500 deducted via UPI for booking BK12345678 on 12/05/2024 in Mumbai")
	assert.Equal(t, "BK12345678", d.BookingId)
	assert.Equal(t, "₹500", d.Amount)
	assert.Equal(t, "UPI", d.PaymentMethod)
	assert.Equal(t, "12/05/2024", d.DateTime)
	assert.Equal(t, "Mumbai", d.Location)

	d = ExtractDetails("paid 250 rs by card yesterday, txn TXN98765 failed")
	assert.Equal(t, "Card", d.PaymentMethod)
	assert.Equal(t, "relative date mentioned", d.DateTime)
	assert.NotEmpty(t, d.TransactionId)

	d = ExtractDetails("nothing useful here")
	assert.Empty(t, d.BookingId)
	assert.Empty(t, d.Amount)
}

func TestExtractNameFromHistory(t *testing.T) {
	history := []store.Turn{
		{Role: store.RoleAssistant, Content: "Could you share your contact details? What's your name?"},
		{Role: store.RoleUser, Content: "Rahul"},
	}
	assert.Equal(t, "Rahul", ExtractNameFromHistory(history))

	history = []store.Turn{
		{Role: store.RoleUser, Content: "hi, my name is Priya and my refund is stuck"},
	}
	assert.Equal(t, "Priya", ExtractNameFromHistory(history))

	history = []store.Turn{
		{Role: store.RoleUser, Content: "refund please"},
	}
	assert.Equal(t, "", ExtractNameFromHistory(history))
}
