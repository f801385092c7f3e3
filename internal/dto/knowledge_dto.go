package dto

import "ai-support-chat-be/pkg/store"

type IngestRequest struct {
	DocId     string   `json:"doc_id" validate:"required,max=128"`
	Title     string   `json:"title" validate:"required"`
	Text      string   `json:"text" validate:"required"`
	Tags      []string `json:"tags,omitempty"`
	Lang      string   `json:"lang,omitempty" validate:"omitempty,oneof=en hi"`
	SourceURL string   `json:"source_url,omitempty"`
}

type IngestResponse struct {
	DocId          string `json:"doc_id"`
	IngestedChunks int    `json:"ingested_chunks"`
}

type KnowledgeQueryRequest struct {
	SessionId string `json:"session_id,omitempty" validate:"omitempty,max=64"`
	Query     string `json:"query" validate:"required"`
	LangHint  string `json:"lang_hint,omitempty" validate:"omitempty,oneof=en hi"`
	TopK      int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=20"`
}

type KnowledgeQueryResponse struct {
	Answer     string         `json:"answer"`
	Confidence float64        `json:"confidence"`
	Language   string         `json:"language"`
	Sources    []store.Source `json:"sources"`
	RetrievedK int            `json:"retrieved_k"`
}
