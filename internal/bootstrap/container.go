package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"ai-support-chat-be/internal/config"
	"ai-support-chat-be/internal/controller"
	"ai-support-chat-be/internal/pkg/logger"
	"ai-support-chat-be/internal/repository/implementation"
	"ai-support-chat-be/internal/repository/memory"
	"ai-support-chat-be/internal/service"
	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/llm/openai"
	"ai-support-chat-be/pkg/policy"
	"ai-support-chat-be/pkg/rag"
	"ai-support-chat-be/pkg/vectorstore"
	pgvectorstore "ai-support-chat-be/pkg/vectorstore/pgvector"
	"ai-support-chat-be/pkg/vectorstore/qdrant"

	pkgNats "ai-support-chat-be/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController

	Logger logger.ILogger

	// Held so main can close the connection on shutdown.
	NatsPublisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	ragLogger := initRagLogger()

	// Vector index backend, selected by config. Qdrant is the default;
	// pgvector keeps everything in Postgres for small deployments.
	var vectors vectorstore.Store
	if cfg.Vector.Provider == "pgvector" {
		vectors = pgvectorstore.NewStore(db)
		log.Printf("[INFO] Using Vector Store: PGVECTOR")
	} else {
		vectors = qdrant.NewStore(qdrant.Config{
			URL:        cfg.Vector.QdrantURL,
			APIKey:     cfg.Vector.QdrantKey,
			Collection: cfg.Vector.Collection,
		})
		log.Printf("[INFO] Using Vector Store: QDRANT (%s)", cfg.Vector.Collection)
	}

	embeddingProvider := embedding.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
	llmProvider := openai.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIKey, cfg.Ai.ChatModel)
	log.Printf("[INFO] Using LLM: %s, Embeddings: %s", cfg.Ai.ChatModel, cfg.Ai.EmbeddingModel)

	orchestrator := rag.NewOrchestrator(embeddingProvider, vectors, llmProvider, ragLogger)
	orchestrator.SetLimits(cfg.Policy.TopK, cfg.Policy.MaxQueryChars)

	engine := policy.NewEngine(orchestrator, policy.Thresholds{
		ConfThreshold:    cfg.Policy.ConfThreshold,
		VeryLowThreshold: cfg.Policy.VeryLowThreshold,
		MinTopScore:      cfg.Policy.MinTopScore,
		AnswerTopScore:   cfg.Policy.AnswerTopScore,
		MaxAttempts:      cfg.Policy.MaxAttempts,
		MinMessageLen:    cfg.Policy.MinMessageLen,
		TopK:             cfg.Policy.TopK,
	}, ragLogger)

	// Repositories
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	ticketRepo := implementation.NewTicketRepository(db)
	sessionCache := memory.NewSessionCache()

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Services
	ticketService := service.NewTicketService(ticketRepo, sessionRepo, messageRepo, natsPub, sysLogger)
	chatService := service.NewChatService(sessionRepo, messageRepo, ticketService, engine, sessionCache, natsPub, sysLogger)
	knowledgeService := service.NewKnowledgeService(orchestrator, natsPub, sysLogger)

	return &Container{
		ChatController:      controller.NewChatController(chatService, ticketService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService, cfg.Keys.Knowledge),
		Logger:              sysLogger,
		NatsPublisher:       natsPub,
	}
}

// initRagLogger writes the retrieval pipeline's trace to its own file so
// prompt/score debugging does not drown the structured app log.
func initRagLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "rag_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}
