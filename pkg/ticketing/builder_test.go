package ticketing

import (
	"fmt"
	"strings"
	"testing"

	"ai-support-chat-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "Refund issue - refund pending", BuildSubject("refund not received for my show"))
	assert.Equal(t, "Support issue", BuildSubject("something odd happened"))
}

func TestBuildDescriptionSections(t *testing.T) {
	conf := 0.45
	top := 0.3
	history := []store.Turn{
		{Role: store.RoleUser, Content: "paid ₹500 via UPI but no confirmation"},
		{Role: store.RoleAssistant, Content: "Could you share your booking id?"},
	}
	sources := []store.Source{
		{Title: "Payments FAQ", SourceURL: "https://kb.example.com/payments", Score: 0.3},
	}

	desc := BuildDescription(history, sources, "paid ₹500 via UPI but no confirmation", Metadata{
		SessionId:       "sess-1",
		Language:        "en",
		ResolutionState: "UNRESOLVED",
		Confidence:      &conf,
		TopScore:        &top,
		CustomerName:    "Rahul",
		CustomerEmail:   "rahul@example.com",
	})

	assert.Contains(t, desc, "### Customer Details")
	assert.Contains(t, desc, "- Name: Rahul")
	assert.Contains(t, desc, "- Email: rahul@example.com")
	assert.Contains(t, desc, "- Phone: Not provided")
	assert.Contains(t, desc, "### Issue Summary")
	assert.Contains(t, desc, "- Payment method: UPI")
	assert.Contains(t, desc, "- Amount: ₹500")
	assert.Contains(t, desc, "### Conversation Transcript")
	assert.Contains(t, desc, "- Customer: paid ₹500 via UPI but no confirmation")
	assert.Contains(t, desc, "- Assistant: Could you share your booking id?")
	assert.Contains(t, desc, "### Knowledge Base Sources Used")
	assert.Contains(t, desc, "- Payments FAQ — https://kb.example.com/payments (score=0.3)")
	assert.Contains(t, desc, "### System Metadata")
	assert.Contains(t, desc, "- Session ID: sess-1")
	assert.Contains(t, desc, "- Resolution state: UNRESOLVED")
	assert.Contains(t, desc, "- Confidence: 0.45")
}

func TestBuildDescriptionTruncatesTranscriptAndSources(t *testing.T) {
	var history []store.Turn
	for i := 0; i < 20; i++ {
		history = append(history, store.Turn{Role: store.RoleUser, Content: fmt.Sprintf("turn %d", i)})
	}
	sources := []store.Source{
		{Title: "A", Score: 0.9}, {Title: "B", Score: 0.8},
		{Title: "C", Score: 0.7}, {Title: "D", Score: 0.6},
	}

	desc := BuildDescription(history, sources, "refund please", Metadata{})

	assert.NotContains(t, desc, "turn 7", "only the last 12 turns are kept")
	assert.Contains(t, desc, "turn 8")
	assert.Contains(t, desc, "turn 19")

	assert.Equal(t, 3, strings.Count(desc, "(score="), "only the top 3 sources are listed")
	assert.NotContains(t, desc, "- D —")
}

func TestBuildDescriptionNoSources(t *testing.T) {
	desc := BuildDescription(nil, nil, "", Metadata{})
	assert.Contains(t, desc, "- Not available")
	assert.Contains(t, desc, "- Confidence: n/a")
	assert.Contains(t, desc, "Customer’s latest message: Not provided")
}
