package pgvector

import (
	"context"
	"fmt"
	"time"

	"ai-support-chat-be/pkg/vectorstore"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KnowledgeChunk is the pgvector-backed row for a single indexed chunk.
type KnowledgeChunk struct {
	Id             string                      `gorm:"type:text;primaryKey"`
	DocId          string                      `gorm:"type:text;not null;index"`
	ChunkId        string                      `gorm:"type:text;not null"`
	ChunkIndex     int                         `gorm:"default:0"`
	Title          string                      `gorm:"type:text"`
	SourceURL      string                      `gorm:"type:text"`
	Language       string                      `gorm:"type:varchar(8);index"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Content        string                      `gorm:"type:text"`
	EmbeddingValue pgvector.Vector             `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}

// Store implements vectorstore.Store on top of Postgres with the
// pgvector extension, using cosine distance ordering.
type Store struct {
	db *gorm.DB
}

var _ vectorstore.Store = &Store{}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureReady(ctx context.Context, dimension int) error {
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	return s.db.WithContext(ctx).AutoMigrate(&KnowledgeChunk{})
}

func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	rows := make([]*KnowledgeChunk, len(points))
	for i, p := range points {
		rows[i] = &KnowledgeChunk{
			Id:             p.Id,
			DocId:          p.Payload.DocId,
			ChunkId:        p.Payload.ChunkId,
			ChunkIndex:     p.Payload.Index,
			Title:          p.Payload.Title,
			SourceURL:      p.Payload.SourceURL,
			Language:       p.Payload.Language,
			Tags:           datatypes.NewJSONSlice(p.Payload.Tags),
			Content:        p.Payload.Text,
			EmbeddingValue: pgvector.NewVector(p.Vector),
		}
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rows).Error
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int, language string) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		topK = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) gives the similarity score.
	type result struct {
		KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	query := s.db.WithContext(ctx).
		Table("knowledge_chunks").
		Select("knowledge_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector)
	if language != "" {
		query = query.Where("language = ?", language)
	}
	err := query.
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}

	hits := make([]vectorstore.Hit, len(results))
	for i, res := range results {
		hits[i] = vectorstore.Hit{
			Payload: vectorstore.Payload{
				DocId:     res.DocId,
				ChunkId:   res.ChunkId,
				Index:     res.ChunkIndex,
				Title:     res.Title,
				SourceURL: res.SourceURL,
				Language:  res.Language,
				Tags:      res.Tags,
				Text:      res.Content,
			},
			Score: res.Similarity,
		}
	}
	return hits, nil
}

func (s *Store) DeleteByDocId(ctx context.Context, docId string) error {
	return s.db.WithContext(ctx).Where("doc_id = ?", docId).Delete(&KnowledgeChunk{}).Error
}
