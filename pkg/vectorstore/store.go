package vectorstore

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the vector backend cannot be reached.
var ErrUnavailable = errors.New("vector store unavailable")

// Payload is the metadata stored alongside each chunk vector.
type Payload struct {
	DocId     string `json:"doc_id"`
	ChunkId   string `json:"chunk_id"`
	Index     int    `json:"index"`
	Title     string `json:"title"`
	SourceURL string   `json:"source_url"`
	Language  string   `json:"language"`
	Tags      []string `json:"tags,omitempty"`
	Text      string   `json:"text"`
}

// Point is a single chunk vector with its payload.
type Point struct {
	Id      string
	Vector  []float32
	Payload Payload
}

// Hit is a search result with its cosine similarity score.
type Hit struct {
	Payload Payload
	Score   float64
}

// Store defines the contract for any vector index backend.
type Store interface {
	// EnsureReady prepares the backing collection/table for the given dimension.
	EnsureReady(ctx context.Context, dimension int) error

	// Upsert inserts or replaces points by id.
	Upsert(ctx context.Context, points []Point) error

	// Search returns the topK nearest points by cosine similarity,
	// optionally filtered by payload language ("" means no filter).
	Search(ctx context.Context, vector []float32, topK int, language string) ([]Hit, error)

	// DeleteByDocId removes all points belonging to a document.
	DeleteByDocId(ctx context.Context, docId string) error
}
