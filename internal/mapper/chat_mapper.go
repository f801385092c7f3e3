package mapper

import (
	"encoding/json"
	"time"

	"ai-support-chat-be/internal/entity"
	"ai-support-chat-be/internal/model"
	"ai-support-chat-be/pkg/store"

	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:                    s.Id,
		SessionId:             s.SessionId,
		Language:              s.Language,
		PreferredLang:         s.PreferredLang,
		LowConfCount:          s.LowConfCount,
		ClarificationCount:    s.ClarificationCount,
		LastResolutionState:   s.LastResolutionState,
		IssueCategory:         s.IssueCategory,
		IssueSubtype:          s.IssueSubtype,
		LastEscalationOffered: s.LastEscalationOffered,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:                    s.Id,
		SessionId:             s.SessionId,
		Language:              s.Language,
		PreferredLang:         s.PreferredLang,
		LowConfCount:          s.LowConfCount,
		ClarificationCount:    s.ClarificationCount,
		LastResolutionState:   s.LastResolutionState,
		IssueCategory:         s.IssueCategory,
		IssueSubtype:          s.IssueSubtype,
		LastEscalationOffered: s.LastEscalationOffered,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             updatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}

	var sources []store.Source
	if len(msg.Sources) > 0 {
		// Stored sources are trusted JSON written by this service.
		_ = json.Unmarshal(msg.Sources, &sources)
	}

	return &entity.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Confidence:    msg.Confidence,
		Sources:       sources,
		CreatedAt:     msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}

	var sources datatypes.JSON
	if len(msg.Sources) > 0 {
		if data, err := json.Marshal(msg.Sources); err == nil {
			sources = data
		}
	}

	return &model.ChatMessage{
		Id:            msg.Id,
		ChatSessionId: msg.ChatSessionId,
		Role:          msg.Role,
		Content:       msg.Content,
		Confidence:    msg.Confidence,
		Sources:       sources,
		CreatedAt:     msg.CreatedAt,
	}
}
