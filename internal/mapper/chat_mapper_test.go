package mapper

import (
	"testing"
	"time"

	"ai-support-chat-be/internal/entity"
	"ai-support-chat-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatSessionRoundTrip(t *testing.T) {
	m := NewChatMapper()
	now := time.Now()
	session := &entity.ChatSession{
		Id:                    uuid.New(),
		SessionId:             "sess-1",
		Language:              "hi",
		PreferredLang:         "hi",
		LowConfCount:          2,
		ClarificationCount:    1,
		LastResolutionState:   "NEEDS_CLARIFICATION",
		IssueCategory:         "refund",
		IssueSubtype:          "refund_not_received",
		LastEscalationOffered: true,
		CreatedAt:             now,
		UpdatedAt:             &now,
	}

	got := m.ChatSessionToEntity(m.ChatSessionToModel(session))
	assert.Equal(t, session.Id, got.Id)
	assert.Equal(t, session.SessionId, got.SessionId)
	assert.Equal(t, session.PreferredLang, got.PreferredLang)
	assert.Equal(t, session.ClarificationCount, got.ClarificationCount)
	assert.Equal(t, session.IssueSubtype, got.IssueSubtype)
	assert.True(t, got.LastEscalationOffered)
	assert.NotNil(t, got.UpdatedAt)

	assert.Nil(t, m.ChatSessionToModel(nil))
	assert.Nil(t, m.ChatSessionToEntity(nil))
}

func TestChatMessageRoundTripSources(t *testing.T) {
	m := NewChatMapper()
	conf := 0.72
	message := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: uuid.New(),
		Role:          store.RoleAssistant,
		Content:       "Refunds take 5-7 business days.",
		Confidence:    &conf,
		Sources: []store.Source{
			{ChunkId: "refund-policy#0", DocId: "refund-policy", Title: "Refund Policy", Score: 0.82},
		},
	}

	got := m.ChatMessageToEntity(m.ChatMessageToModel(message))
	assert.Equal(t, message.Content, got.Content)
	assert.Equal(t, conf, *got.Confidence)
	assert.Len(t, got.Sources, 1)
	assert.Equal(t, "refund-policy#0", got.Sources[0].ChunkId)
	assert.InDelta(t, 0.82, got.Sources[0].Score, 1e-9)
}

func TestChatMessageNoSources(t *testing.T) {
	m := NewChatMapper()
	message := &entity.ChatMessage{
		Id:      uuid.New(),
		Role:    store.RoleUser,
		Content: "refund please",
	}

	got := m.ChatMessageToEntity(m.ChatMessageToModel(message))
	assert.Nil(t, got.Confidence)
	assert.Empty(t, got.Sources)
}
