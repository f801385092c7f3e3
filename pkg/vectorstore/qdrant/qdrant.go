package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-support-chat-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// Store is a minimal REST client to Qdrant.
// It assumes cosine distance and creates the collection if missing.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

var _ vectorstore.Store = &Store{}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Store) EnsureReady(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema.
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Store) Upsert(ctx context.Context, points []vectorstore.Point) error {
	if len(points) == 0 {
		return nil
	}
	reqPoints := make([]map[string]any, len(points))
	for i, p := range points {
		// Qdrant only accepts unsigned integers or UUIDs as point ids,
		// so the chunk id is hashed into a deterministic UUIDv5. The
		// same chunk always maps to the same point, which makes a
		// re-ingest overwrite instead of duplicate.
		pointId := uuid.NewSHA1(uuid.NameSpaceURL, []byte(p.Id)).String()
		reqPoints[i] = map[string]any{
			"id":     pointId,
			"vector": p.Vector,
			"payload": map[string]any{
				"doc_id":     p.Payload.DocId,
				"chunk_id":   p.Payload.ChunkId,
				"index":      p.Payload.Index,
				"title":      p.Payload.Title,
				"source_url": p.Payload.SourceURL,
				"language":   p.Payload.Language,
				"tags":       p.Payload.Tags,
				"text":       p.Payload.Text,
			},
		}
	}
	body := map[string]any{"points": reqPoints}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Store) Search(ctx context.Context, vector []float32, topK int, language string) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	if language != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "language", "match": map[string]any{"value": language}},
			},
		}
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	hits := make([]vectorstore.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		payload := vectorstore.Payload{}
		if v, ok := r.Payload["doc_id"].(string); ok {
			payload.DocId = v
		}
		if v, ok := r.Payload["chunk_id"].(string); ok {
			payload.ChunkId = v
		}
		if v, ok := r.Payload["index"].(float64); ok {
			payload.Index = int(v)
		}
		if v, ok := r.Payload["title"].(string); ok {
			payload.Title = v
		}
		if v, ok := r.Payload["source_url"].(string); ok {
			payload.SourceURL = v
		}
		if v, ok := r.Payload["language"].(string); ok {
			payload.Language = v
		}
		if vs, ok := r.Payload["tags"].([]any); ok {
			for _, tag := range vs {
				if t, ok := tag.(string); ok {
					payload.Tags = append(payload.Tags, t)
				}
			}
		}
		if v, ok := r.Payload["text"].(string); ok {
			payload.Text = v
		}
		hits = append(hits, vectorstore.Hit{Payload: payload, Score: r.Score})
	}
	return hits, nil
}

func (s *Store) DeleteByDocId(ctx context.Context, docId string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "doc_id", "match": map[string]any{"value": docId}},
			},
		},
	}
	return s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), body, nil)
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
