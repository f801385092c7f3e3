package dto

import "time"

type CreateTicketRequest struct {
	SessionId string `json:"session_id" validate:"required,max=64"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type CreateTicketResponse struct {
	TicketId string `json:"ticket_id"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type GetTicketStatusRequest struct {
	IncludeDescription bool `query:"include_description"`
}

type TicketStatusResponse struct {
	TicketId    string     `json:"ticket_id"`
	Subject     string     `json:"subject"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Language    string     `json:"language"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	Description string     `json:"description,omitempty"`
}
