package entity

import (
	"time"

	"ai-support-chat-be/pkg/store"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	Confidence    *float64
	Sources       []store.Source
	CreatedAt     time.Time
}
