package model

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketNumber  string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	SessionId     string    `gorm:"type:varchar(64);index"`
	Subject       string    `gorm:"type:text;not null"`
	Description   string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(16);not null;default:'Open'"`
	Priority      string    `gorm:"type:varchar(16);not null;default:'Medium'"`
	CustomerName  string    `gorm:"type:varchar(120)"`
	CustomerEmail string    `gorm:"type:varchar(120)"`
	CustomerPhone string    `gorm:"type:varchar(32)"`
	Language      string    `gorm:"type:varchar(8)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}
