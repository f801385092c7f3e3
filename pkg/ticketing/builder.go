package ticketing

import (
	"fmt"
	"strings"

	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/store"
)

const transcriptTurns = 12

// Metadata carries the session context recorded in the ticket body.
type Metadata struct {
	SessionId       string
	Language        string
	ResolutionState string
	Confidence      *float64
	TopScore        *float64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
}

// BuildSubject derives a short ticket subject from the user's message.
func BuildSubject(userText string) string {
	return classifier.BuildTicketSubject(userText)
}

// BuildDescription renders the ticket body as scannable markdown with
// explicit sections: customer details, issue summary, transcript,
// sources and system metadata.
func BuildDescription(history []store.Turn, sources []store.Source, userText string, meta Metadata) string {
	details := classifier.ExtractDetails(userText)

	latestMessage := strings.TrimSpace(userText)
	if latestMessage == "" {
		latestMessage = "Not provided"
	}

	lines := []string{
		"### Customer Details",
		fmt.Sprintf("- Name: %s", orNotProvided(meta.CustomerName)),
		fmt.Sprintf("- Email: %s", orNotProvided(meta.CustomerEmail)),
		fmt.Sprintf("- Phone: %s", orNotProvided(meta.CustomerPhone)),
		"",
		"### Issue Summary",
		fmt.Sprintf("- Category: %s", classifier.GuessIssueType(userText)),
		fmt.Sprintf("- Customer’s latest message: %s", latestMessage),
		fmt.Sprintf("- Booking ID: %s", orNotProvided(details.BookingId)),
		fmt.Sprintf("- Transaction ID: %s", orNotProvided(details.TransactionId)),
		fmt.Sprintf("- Payment method: %s", orNotProvided(details.PaymentMethod)),
		fmt.Sprintf("- Date/time: %s", orNotProvided(details.DateTime)),
		fmt.Sprintf("- Amount: %s", orNotProvided(details.Amount)),
		fmt.Sprintf("- City/Venue: %s", orNotProvided(details.Location)),
		"",
		"### Conversation Transcript",
	}

	transcript := history
	if len(transcript) > transcriptTurns {
		transcript = transcript[len(transcript)-transcriptTurns:]
	}
	for _, turn := range transcript {
		role := "Assistant"
		if turn.Role == store.RoleUser {
			role = "Customer"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", role, strings.TrimSpace(turn.Content)))
	}

	lines = append(lines, "", "### Knowledge Base Sources Used")
	if len(sources) > 0 {
		for i, source := range sources {
			if i >= 3 {
				break
			}
			title := source.Title
			if title == "" {
				title = source.DocId
			}
			if title == "" {
				title = "Source"
			}
			url := source.SourceURL
			if url == "" {
				url = "n/a"
			}
			lines = append(lines, fmt.Sprintf("- %s — %s (score=%g)", title, url, source.Score))
		}
	} else {
		lines = append(lines, "- Not available")
	}

	lines = append(lines,
		"",
		"### System Metadata",
		fmt.Sprintf("- Session ID: %s", orNA(meta.SessionId)),
		fmt.Sprintf("- Language: %s", orNA(meta.Language)),
		fmt.Sprintf("- Resolution state: %s", orNA(meta.ResolutionState)),
		fmt.Sprintf("- Confidence: %s", floatOrNA(meta.Confidence)),
		fmt.Sprintf("- Top score: %s", floatOrNA(meta.TopScore)),
	)

	return strings.Join(lines, "\n")
}

func orNotProvided(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not provided"
	}
	return value
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}

func floatOrNA(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%g", *value)
}
