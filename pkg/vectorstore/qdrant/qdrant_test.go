package qdrant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-support-chat-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func recordingServer(t *testing.T, captured *[]byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		*captured = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","result":{}}`))
	}))
}

func TestUpsertSendsUUIDPointIds(t *testing.T) {
	var captured []byte
	server := recordingServer(t, &captured)
	defer server.Close()

	s := NewStore(Config{URL: server.URL, Collection: "kb_chunks"})
	points := []vectorstore.Point{
		{
			Id:     "refund-policy#0",
			Vector: []float32{1, 0, 0},
			Payload: vectorstore.Payload{
				DocId:   "refund-policy",
				ChunkId: "refund-policy#0",
				Tags:    []string{"refund", "payments"},
				Text:    "Refunds are processed within 5-7 business days.",
			},
		},
	}
	assert.NoError(t, s.Upsert(context.Background(), points))

	var req struct {
		Points []struct {
			Id      string         `json:"id"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	assert.NoError(t, json.Unmarshal(captured, &req))
	assert.Len(t, req.Points, 1)

	// Qdrant rejects arbitrary string ids, so the chunk id must be sent
	// as a deterministic UUID while the payload keeps the readable one.
	parsed, err := uuid.Parse(req.Points[0].Id)
	assert.NoError(t, err)
	assert.Equal(t, uuid.NewSHA1(uuid.NameSpaceURL, []byte("refund-policy#0")).String(), parsed.String())
	assert.Equal(t, "refund-policy#0", req.Points[0].Payload["chunk_id"])
	assert.Equal(t, []any{"refund", "payments"}, req.Points[0].Payload["tags"])
}

func TestUpsertPointIdIsStableAcrossIngests(t *testing.T) {
	id1 := uuid.NewSHA1(uuid.NameSpaceURL, []byte("refund-policy#3"))
	id2 := uuid.NewSHA1(uuid.NameSpaceURL, []byte("refund-policy#3"))
	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, uuid.NewSHA1(uuid.NameSpaceURL, []byte("refund-policy#4")))
}
