package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Vector   VectorConfig
	Ai       AIConfig
	Policy   PolicyConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type VectorConfig struct {
	Provider   string // "qdrant" or "pgvector"
	QdrantURL  string
	QdrantKey  string
	Collection string
}

type AIConfig struct {
	OpenAIBaseURL  string
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
}

type PolicyConfig struct {
	ConfThreshold    float64
	VeryLowThreshold float64
	MinTopScore      float64
	AnswerTopScore   float64
	MaxAttempts      int
	MinMessageLen    int
	TopK             int
	MaxQueryChars    int
}

type APIKeys struct {
	Knowledge string // protects the ingest/query endpoints
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Vector: VectorConfig{
			Provider:   getEnv("VECTOR_PROVIDER", "qdrant"),
			QdrantURL:  getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantKey:  getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "kb_chunks"),
		},
		Ai: AIConfig{
			OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		},
		Policy: PolicyConfig{
			ConfThreshold:    getEnvAsFloat("CONF_THRESHOLD", 0.7),
			VeryLowThreshold: getEnvAsFloat("VERY_LOW_THRESHOLD", 0.2),
			MinTopScore:      getEnvAsFloat("MIN_TOP_SCORE", 0.35),
			AnswerTopScore:   getEnvAsFloat("ANSWER_TOP_SCORE", 0.45),
			MaxAttempts:      getEnvAsInt("ESCALATION_MAX_ATTEMPTS", 2),
			MinMessageLen:    getEnvAsInt("MIN_MESSAGE_LEN", 6),
			TopK:             getEnvAsInt("TOP_K", 5),
			MaxQueryChars:    getEnvAsInt("MAX_QUERY_CHARS", 4000),
		},
		Keys: APIKeys{
			Knowledge: getEnv("KNOWLEDGE_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
