package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionId filters by the client-facing session identifier.
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByChatSessionId filters messages by their owning session.
type ByChatSessionId struct {
	ChatSessionId uuid.UUID
}

func (s ByChatSessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionId)
}

// ByRole filters messages by turn role.
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// CreatedAfter returns only records newer than the given instant,
// used by the polling endpoint's "since" cursor.
type CreatedAfter struct {
	After time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.After)
}

// ByTicketNumber filters tickets by their human-readable number.
type ByTicketNumber struct {
	TicketNumber string
}

func (s ByTicketNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ticket_number = ?", s.TicketNumber)
}
