package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession holds the per-conversation policy state alongside the
// client-facing session id.
type ChatSession struct {
	Id                    uuid.UUID
	SessionId             string
	Language              string
	PreferredLang         string
	LowConfCount          int
	ClarificationCount    int
	LastResolutionState   string
	IssueCategory         string
	IssueSubtype          string
	LastEscalationOffered bool
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}
