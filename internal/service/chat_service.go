package service

import (
	"context"
	"strings"
	"time"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/entity"
	"ai-support-chat-be/internal/pkg/logger"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/repository/contract"
	"ai-support-chat-be/internal/repository/memory"
	"ai-support-chat-be/internal/repository/specification"
	"ai-support-chat-be/pkg/events"
	pkgNats "ai-support-chat-be/pkg/nats"
	"ai-support-chat-be/pkg/policy"
	"ai-support-chat-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// historyTurns bounds how much conversation context is loaded per turn.
	historyTurns = 20

	defaultMessagesLimit = 50
	ticketTypeSupport    = "support"
)

type IChatService interface {
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetMessages(ctx context.Context, request *dto.GetMessagesRequest) (*dto.GetMessagesResponse, error)
}

type chatService struct {
	sessionRepo   contract.ChatSessionRepository
	messageRepo   contract.ChatMessageRepository
	ticketService ITicketService
	engine        *policy.Engine
	sessionCache  *memory.SessionCache
	publisher     *pkgNats.Publisher
	logger        logger.ILogger
}

func NewChatService(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	ticketService ITicketService,
	engine *policy.Engine,
	sessionCache *memory.SessionCache,
	publisher *pkgNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:   sessionRepo,
		messageRepo:   messageRepo,
		ticketService: ticketService,
		engine:        engine,
		sessionCache:  sessionCache,
		publisher:     publisher,
		logger:        log,
	}
}

// SendMessage runs one conversation turn: persist the user message, let the
// policy engine decide, perform any side effects it asks for (ticket
// creation), persist the reply and advance the session state.
func (s *chatService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "message must not be empty")
	}

	// Serialize turns on the same session; different sessions run in parallel.
	lock := s.sessionCache.Lock(request.SessionId)
	lock.Lock()
	defer lock.Unlock()

	session, state, err := s.ensureSession(ctx, request.SessionId)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory(ctx, session.Id)
	if err != nil {
		return nil, err
	}
	lastConfidence, lastSources := lastAssistantContext(history)

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          store.RoleUser,
		Content:       message,
	}
	if err := s.messageRepo.Create(ctx, userMessage); err != nil {
		return nil, err
	}
	s.publishMessage(ctx, request.SessionId, store.RoleUser, message, nil)

	decision, err := s.engine.Decide(ctx, request.SessionId, policy.Input{
		Message:        message,
		ForcedLang:     request.LangHint,
		State:          state,
		History:        history,
		LastConfidence: lastConfidence,
		LastSources:    lastSources,
	})
	if err != nil {
		return nil, err
	}

	answer := decision.Answer
	ticketId := ""
	ticketType := ""
	if decision.Action == policy.ActionCreateTicket {
		userText := lastIssueText(history, message)
		ticket, err := s.ticketService.CreateFromEscalation(ctx, EscalationContext{
			SessionId:       request.SessionId,
			Language:        decision.Language,
			Contact:         decision.Contact,
			History:         append(history, store.Turn{Role: store.RoleUser, Content: message}),
			Sources:         lastSources,
			UserText:        userText,
			ResolutionState: decision.ResolutionState,
			Confidence:      lastConfidence,
			TopScore:        store.TopScore(lastSources),
		})
		if err != nil {
			// A helpdesk outage must not fail the turn. The user gets the
			// retry-later reply and the session state still advances.
			s.logger.Error("ChatService", "Ticket creation failed", map[string]interface{}{
				"session_id": request.SessionId,
				"error":      err.Error(),
			})
			answer = policy.TicketCreatedReply(decision.Language, "")
		} else {
			answer = policy.TicketCreatedReply(decision.Language, ticket.TicketNumber)
			ticketId = ticket.TicketNumber
			ticketType = ticketTypeSupport
		}
	}

	confidence := decision.Confidence
	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          store.RoleAssistant,
		Content:       answer,
		Confidence:    &confidence,
		Sources:       decision.Sources,
	}
	if err := s.messageRepo.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}
	s.publishMessage(ctx, request.SessionId, store.RoleAssistant, answer, &confidence)

	if err := s.saveState(ctx, session, decision); err != nil {
		return nil, err
	}

	s.logger.Debug("ChatService", "Turn decided", map[string]interface{}{
		"session_id": request.SessionId,
		"resolution": decision.ResolutionState,
		"language":   decision.Language,
		"escalated":  decision.Escalated,
	})

	return &dto.SendMessageResponse{
		SessionId:         request.SessionId,
		Answer:            answer,
		Confidence:        decision.Confidence,
		Language:          decision.Language,
		Sources:           decision.Sources,
		ResolutionState:   decision.ResolutionState,
		QuickReplies:      decision.QuickReplies,
		Escalated:         decision.Escalated,
		EscalationOffered: decision.EscalationOffered,
		ContactRequired:   decision.ContactRequired,
		TicketId:          ticketId,
		TicketType:        ticketType,
	}, nil
}

// GetMessages serves the polling endpoint. The optional since cursor is an
// RFC 3339 timestamp; only strictly newer messages are returned.
func (s *chatService) GetMessages(ctx context.Context, request *dto.GetMessagesRequest) (*dto.GetMessagesResponse, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.BySessionId{SessionId: request.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewAppError(fiber.StatusNotFound, "session not found")
	}

	limit := request.Limit
	if limit <= 0 || limit > defaultMessagesLimit {
		limit = defaultMessagesLimit
	}

	specs := []specification.Specification{
		specification.ByChatSessionId{ChatSessionId: session.Id},
		specification.OrderBy{Field: "created_at"},
		specification.Pagination{Limit: limit},
	}
	if request.Since != "" {
		since, err := time.Parse(time.RFC3339, request.Since)
		if err != nil {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "since must be an RFC 3339 timestamp")
		}
		specs = append(specs, specification.CreatedAfter{After: since})
	}

	messages, err := s.messageRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		items = append(items, dto.ChatMessageDTO{
			Role:       m.Role,
			Content:    m.Content,
			Confidence: m.Confidence,
			Sources:    m.Sources,
			CreatedAt:  m.CreatedAt,
		})
	}

	return &dto.GetMessagesResponse{
		SessionId: request.SessionId,
		Messages:  items,
	}, nil
}

// ensureSession loads the session row and its policy state, creating both
// on first contact. The cache is consulted first; the database row is the
// fallback after a cache eviction or restart.
func (s *chatService) ensureSession(ctx context.Context, sessionId string) (*entity.ChatSession, policy.State, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.BySessionId{SessionId: sessionId})
	if err != nil {
		return nil, policy.State{}, err
	}
	if session == nil {
		session = &entity.ChatSession{
			Id:                  uuid.New(),
			SessionId:           sessionId,
			Language:            "en",
			LastResolutionState: policy.ResolutionAnswered,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, policy.State{}, err
		}
		state := policy.NewState("")
		s.sessionCache.Save(sessionId, &state)
		return session, state, nil
	}

	if cached, ok := s.sessionCache.Get(sessionId); ok {
		return session, *cached, nil
	}
	state := policy.State{
		PreferredLang:         session.PreferredLang,
		LowConfCount:          session.LowConfCount,
		ClarificationCount:    session.ClarificationCount,
		LastResolutionState:   session.LastResolutionState,
		IssueCategory:         session.IssueCategory,
		IssueSubtype:          session.IssueSubtype,
		LastEscalationOffered: session.LastEscalationOffered,
	}
	return session, state, nil
}

func (s *chatService) saveState(ctx context.Context, session *entity.ChatSession, decision *policy.Decision) error {
	next := decision.NextState
	session.Language = decision.Language
	session.PreferredLang = next.PreferredLang
	session.LowConfCount = next.LowConfCount
	session.ClarificationCount = next.ClarificationCount
	session.LastResolutionState = next.LastResolutionState
	session.IssueCategory = next.IssueCategory
	session.IssueSubtype = next.IssueSubtype
	session.LastEscalationOffered = next.LastEscalationOffered
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return err
	}
	s.sessionCache.Save(session.SessionId, &next)
	return nil
}

func (s *chatService) loadHistory(ctx context.Context, chatSessionId uuid.UUID) ([]store.Turn, error) {
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

func (s *chatService) publishMessage(ctx context.Context, sessionId, role, content string, confidence *float64) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"session_id": sessionId,
		"role":       role,
		"content":    content,
	}
	if confidence != nil {
		payload["confidence"] = *confidence
	}
	if err := s.publisher.Publish(ctx, events.NewChatMessageEvent(sessionId, payload)); err != nil {
		s.logger.Warn("ChatService", "Failed to publish chat event", map[string]interface{}{"error": err.Error()})
	}
}

// lastAssistantContext pulls the confidence and sources of the most recent
// assistant turn, used when an escalation needs the previous answer's context.
func lastAssistantContext(history []store.Turn) (*float64, []store.Source) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == store.RoleAssistant {
			return history[i].Confidence, history[i].Sources
		}
	}
	return nil, nil
}

// lastIssueText finds the user message that best describes the issue.
// During contact collection the current message holds contact details,
// so the previous user turn is preferred.
func lastIssueText(history []store.Turn, current string) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == store.RoleUser {
			return history[i].Content
		}
	}
	return current
}
