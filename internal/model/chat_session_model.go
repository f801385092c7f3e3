package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId             string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Language              string    `gorm:"type:varchar(8);not null"`
	PreferredLang         string    `gorm:"type:varchar(8)"`
	LowConfCount          int       `gorm:"default:0"`
	ClarificationCount    int       `gorm:"default:0"`
	LastResolutionState   string    `gorm:"type:varchar(32);not null"`
	IssueCategory         string    `gorm:"type:varchar(32)"`
	IssueSubtype          string    `gorm:"type:varchar(64)"`
	LastEscalationOffered bool      `gorm:"default:false"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}
