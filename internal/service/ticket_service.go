package service

import (
	"context"
	"fmt"
	"strings"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/entity"
	"ai-support-chat-be/internal/pkg/logger"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/repository/contract"
	"ai-support-chat-be/internal/repository/specification"
	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/events"
	pkgNats "ai-support-chat-be/pkg/nats"
	"ai-support-chat-be/pkg/store"
	"ai-support-chat-be/pkg/ticketing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EscalationContext carries everything the ticket body needs from the
// conversation that triggered the escalation.
type EscalationContext struct {
	SessionId       string
	Language        string
	Contact         classifier.Contact
	History         []store.Turn
	Sources         []store.Source
	UserText        string
	ResolutionState string
	Confidence      *float64
	TopScore        *float64
}

type ITicketService interface {
	CreateFromEscalation(ctx context.Context, esc EscalationContext) (*entity.Ticket, error)
	CreateTicket(ctx context.Context, request *dto.CreateTicketRequest) (*dto.CreateTicketResponse, error)
	GetTicketStatus(ctx context.Context, ticketNumber string, includeDescription bool) (*dto.TicketStatusResponse, error)
}

type ticketService struct {
	ticketRepo  contract.TicketRepository
	sessionRepo contract.ChatSessionRepository
	messageRepo contract.ChatMessageRepository
	publisher   *pkgNats.Publisher
	logger      logger.ILogger
}

func NewTicketService(
	ticketRepo contract.TicketRepository,
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	publisher *pkgNats.Publisher,
	log logger.ILogger,
) ITicketService {
	return &ticketService{
		ticketRepo:  ticketRepo,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		publisher:   publisher,
		logger:      log,
	}
}

func newTicketNumber() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("TCK-%s", short)
}

// CreateFromEscalation persists a ticket built from a finished escalation
// flow: contact details are already normalized by the policy engine.
func (s *ticketService) CreateFromEscalation(ctx context.Context, esc EscalationContext) (*entity.Ticket, error) {
	priority := "Medium"
	if classifier.IsHighRisk(esc.UserText, classifier.DetectIntent(esc.UserText)) {
		priority = "High"
	}

	ticket := &entity.Ticket{
		Id:           uuid.New(),
		TicketNumber: newTicketNumber(),
		SessionId:    esc.SessionId,
		Subject:      ticketing.BuildSubject(esc.UserText),
		Description: ticketing.BuildDescription(esc.History, esc.Sources, esc.UserText, ticketing.Metadata{
			SessionId:       esc.SessionId,
			Language:        esc.Language,
			ResolutionState: esc.ResolutionState,
			Confidence:      esc.Confidence,
			TopScore:        esc.TopScore,
			CustomerName:    esc.Contact.Name,
			CustomerEmail:   esc.Contact.Email,
			CustomerPhone:   esc.Contact.Phone,
		}),
		Status:        entity.TicketStatusOpen,
		Priority:      priority,
		CustomerName:  esc.Contact.Name,
		CustomerEmail: esc.Contact.Email,
		CustomerPhone: esc.Contact.Phone,
		Language:      esc.Language,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		s.logger.Error("TicketService", "Failed to create ticket", map[string]interface{}{
			"session_id": esc.SessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	s.logger.Info("TicketService", "Ticket created", map[string]interface{}{
		"ticket_number": ticket.TicketNumber,
		"session_id":    esc.SessionId,
		"priority":      priority,
	})

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewTicketCreatedEvent(esc.SessionId, ticket.TicketNumber, ticket.Subject)); err != nil {
			s.logger.Warn("TicketService", "Failed to publish ticket event", map[string]interface{}{"error": err.Error()})
		}
	}

	return ticket, nil
}

// CreateTicket handles the explicit POST /ticket endpoint, where the
// customer supplies contact details directly instead of going through
// the in-chat escalation flow.
func (s *ticketService) CreateTicket(ctx context.Context, request *dto.CreateTicketRequest) (*dto.CreateTicketResponse, error) {
	contact, err := classifier.NormalizeContact(request.Name, request.Email, request.Phone)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
	}

	session, err := s.sessionRepo.FindOne(ctx, specification.BySessionId{SessionId: request.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "session not found")
	}

	history, err := s.loadHistory(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	userText := strings.TrimSpace(request.Reason)
	if userText == "" {
		// Fall back to the customer's last message as the issue text.
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Role == store.RoleUser {
				userText = history[i].Content
				break
			}
		}
	}

	ticket, err := s.CreateFromEscalation(ctx, EscalationContext{
		SessionId:       request.SessionId,
		Language:        session.Language,
		Contact:         contact,
		History:         history,
		Sources:         nil,
		UserText:        userText,
		ResolutionState: session.LastResolutionState,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateTicketResponse{
		TicketId: ticket.TicketNumber,
		Subject:  ticket.Subject,
		Status:   ticket.Status,
		Message:  "Support ticket created",
	}, nil
}

func (s *ticketService) GetTicketStatus(ctx context.Context, ticketNumber string, includeDescription bool) (*dto.TicketStatusResponse, error) {
	ticket, err := s.ticketRepo.FindOne(ctx, specification.ByTicketNumber{TicketNumber: ticketNumber})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "ticket not found")
	}

	response := &dto.TicketStatusResponse{
		TicketId:  ticket.TicketNumber,
		Subject:   ticket.Subject,
		Status:    ticket.Status,
		Priority:  ticket.Priority,
		Language:  ticket.Language,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
	if includeDescription {
		response.Description = ticket.Description
	}
	return response, nil
}

func (s *ticketService) loadHistory(ctx context.Context, chatSessionId uuid.UUID) ([]store.Turn, error) {
	messages, err := s.messageRepo.FindAll(ctx,
		specification.ByChatSessionId{ChatSessionId: chatSessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyTurns},
	)
	if err != nil {
		return nil, err
	}
	turns := make([]store.Turn, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		turns = append(turns, store.Turn{
			Role:       m.Role,
			Content:    m.Content,
			Confidence: m.Confidence,
			Sources:    m.Sources,
		})
	}
	return turns, nil
}
