package events

import "time"

// Event type codes published on the bus.
const (
	TypeChatMessage   = "CHAT_MESSAGE"
	TypeTicketCreated = "TICKET_CREATED"
	TypeDocIngested   = "DOC_INGESTED"
)

// NewChatMessageEvent broadcasts one chat turn (user or assistant) so
// live clients can render it as it lands.
func NewChatMessageEvent(sessionId string, payload map[string]interface{}) Event {
	data := map[string]interface{}{
		"session_id": sessionId,
	}
	for k, v := range payload {
		data[k] = v
	}
	return BaseEvent{
		Type:       TypeChatMessage,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewTicketCreatedEvent announces an escalation ticket.
func NewTicketCreatedEvent(sessionId, ticketId, subject string) Event {
	return BaseEvent{
		Type: TypeTicketCreated,
		Data: map[string]interface{}{
			"session_id": sessionId,
			"ticket_id":  ticketId,
			"subject":    subject,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocIngestedEvent announces a knowledge base document (re)index.
func NewDocIngestedEvent(docId string, chunks int) Event {
	return BaseEvent{
		Type: TypeDocIngested,
		Data: map[string]interface{}{
			"doc_id": docId,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}
