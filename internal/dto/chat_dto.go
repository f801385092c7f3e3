package dto

import (
	"time"

	"ai-support-chat-be/pkg/store"
)

type SendMessageRequest struct {
	SessionId string `json:"session_id" validate:"required,max=64"`
	Message   string `json:"message" validate:"required"`
	LangHint  string `json:"lang_hint,omitempty" validate:"omitempty,oneof=en hi"`
}

type SendMessageResponse struct {
	SessionId         string         `json:"session_id"`
	Answer            string         `json:"answer"`
	Confidence        float64        `json:"confidence"`
	Language          string         `json:"language"`
	Sources           []store.Source `json:"sources"`
	ResolutionState   string         `json:"resolution_state"`
	QuickReplies      []string       `json:"quick_replies,omitempty"`
	Escalated         bool           `json:"escalated"`
	EscalationOffered bool           `json:"escalation_offered"`
	ContactRequired   bool           `json:"contact_required"`
	TicketId          string         `json:"ticket_id,omitempty"`
	TicketType        string         `json:"ticket_type,omitempty"`
}

type GetMessagesRequest struct {
	SessionId string `query:"session_id" validate:"required,max=64"`
	Since     string `query:"since"`
	Limit     int    `query:"limit"`
}

type ChatMessageDTO struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Confidence *float64       `json:"confidence,omitempty"`
	Sources    []store.Source `json:"sources,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type GetMessagesResponse struct {
	SessionId string           `json:"session_id"`
	Messages  []ChatMessageDTO `json:"messages"`
}
