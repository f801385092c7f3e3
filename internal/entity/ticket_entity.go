package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses follow the helpdesk lifecycle.
const (
	TicketStatusOpen     = "Open"
	TicketStatusResolved = "Resolved"
	TicketStatusClosed   = "Closed"
)

type Ticket struct {
	Id            uuid.UUID
	TicketNumber  string
	SessionId     string
	Subject       string
	Description   string
	Status        string
	Priority      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Language      string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
