package service

import (
	"context"
	"errors"
	"strings"

	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/pkg/logger"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/pkg/chunker"
	"ai-support-chat-be/pkg/events"
	pkgNats "ai-support-chat-be/pkg/nats"
	"ai-support-chat-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeService interface {
	Ingest(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error)
	Query(ctx context.Context, request *dto.KnowledgeQueryRequest) (*dto.KnowledgeQueryResponse, error)
}

type knowledgeService struct {
	orchestrator *rag.Orchestrator
	publisher    *pkgNats.Publisher
	logger       logger.ILogger
}

func NewKnowledgeService(orchestrator *rag.Orchestrator, publisher *pkgNats.Publisher, log logger.ILogger) IKnowledgeService {
	return &knowledgeService{
		orchestrator: orchestrator,
		publisher:    publisher,
		logger:       log,
	}
}

// Ingest chunks a document and indexes it. Re-ingesting an existing doc_id
// overwrites its chunks, so article updates are just another ingest.
func (s *knowledgeService) Ingest(ctx context.Context, request *dto.IngestRequest) (*dto.IngestResponse, error) {
	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "text must not be empty")
	}

	chunks := chunker.Split(text, chunker.DefaultOptions())
	count, err := s.orchestrator.Ingest(ctx, rag.IngestInput{
		DocId:     request.DocId,
		Title:     request.Title,
		Text:      text,
		Language:  request.Lang,
		SourceURL: request.SourceURL,
		Tags:      request.Tags,
		Chunks:    chunks,
	})
	if err != nil {
		if errors.Is(err, rag.ErrEmptyDocument) {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "document produced no chunks")
		}
		s.logger.Error("KnowledgeService", "Ingest failed", map[string]interface{}{
			"doc_id": request.DocId,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("KnowledgeService", "Document ingested", map[string]interface{}{
		"doc_id": request.DocId,
		"chunks": count,
	})

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewDocIngestedEvent(request.DocId, count)); err != nil {
			s.logger.Warn("KnowledgeService", "Failed to publish ingest event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.IngestResponse{
		DocId:          request.DocId,
		IngestedChunks: count,
	}, nil
}

// Query runs the retrieval pipeline directly, without the conversation
// policy layer. Used for knowledge base debugging and integrations.
func (s *knowledgeService) Query(ctx context.Context, request *dto.KnowledgeQueryRequest) (*dto.KnowledgeQueryResponse, error) {
	result, err := s.orchestrator.Query(ctx, rag.QueryInput{
		SessionId: request.SessionId,
		UserQuery: request.Query,
		LangHint:  request.LangHint,
		TopK:      request.TopK,
	})
	if err != nil {
		if errors.Is(err, rag.ErrEmptyQuery) {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "query must not be empty")
		}
		return nil, err
	}

	return &dto.KnowledgeQueryResponse{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Language:   result.Language,
		Sources:    result.Sources,
		RetrievedK: result.RetrievedK,
	}, nil
}
