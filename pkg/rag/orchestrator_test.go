package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	err   error
	calls [][]string
}

func (f *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type fakeVectorStore struct {
	hits     []vectorstore.Hit
	err      error
	upserted []vectorstore.Point
	searched int
}

func (f *fakeVectorStore) EnsureReady(context.Context, int) error { return nil }

func (f *fakeVectorStore) Upsert(_ context.Context, points []vectorstore.Point) error {
	f.upserted = append(f.upserted, points...)
	return nil
}

func (f *fakeVectorStore) Search(context.Context, []float32, int, string) ([]vectorstore.Hit, error) {
	f.searched++
	if f.err != nil {
		return nil, f.err
	}
	return f.hits, nil
}

func (f *fakeVectorStore) DeleteByDocId(context.Context, string) error { return nil }

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(context.Context, []llm.Message, ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, options...)
}

func someHits() []vectorstore.Hit {
	return []vectorstore.Hit{
		{
			Payload: vectorstore.Payload{
				DocId:     "refund-policy",
				ChunkId:   "refund-policy#0",
				Title:     "Refund Policy",
				SourceURL: "https://kb.example.com/refunds",
				Text:      "Refunds are processed within 5-7 business days. Contact support if delayed.",
			},
			Score: 0.82,
		},
	}
}

func TestIngest(t *testing.T) {
	vectors := &fakeVectorStore{}
	o := NewOrchestrator(&fakeEmbedder{}, vectors, &fakeLLM{}, nil)

	count, err := o.Ingest(context.Background(), IngestInput{
		DocId:  "refund-policy",
		Title:  "Refund Policy",
		Tags:   []string{"refund", "payments"},
		Chunks: []string{"chunk one", "chunk two"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, vectors.upserted, 2)
	assert.Equal(t, "refund-policy#0", vectors.upserted[0].Id)
	assert.Equal(t, 0, vectors.upserted[0].Payload.Index)
	assert.Equal(t, "refund-policy#1", vectors.upserted[1].Payload.ChunkId)
	assert.Equal(t, []string{"refund", "payments"}, vectors.upserted[0].Payload.Tags)
	assert.Equal(t, []string{"refund", "payments"}, vectors.upserted[1].Payload.Tags)
}

func TestIngestEmpty(t *testing.T) {
	o := NewOrchestrator(&fakeEmbedder{}, &fakeVectorStore{}, &fakeLLM{}, nil)
	_, err := o.Ingest(context.Background(), IngestInput{DocId: "d"})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestQueryEmpty(t *testing.T) {
	o := NewOrchestrator(&fakeEmbedder{}, &fakeVectorStore{}, &fakeLLM{}, nil)
	_, err := o.Query(context.Background(), QueryInput{UserQuery: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestQueryGroundedAnswer(t *testing.T) {
	o := NewOrchestrator(
		&fakeEmbedder{},
		&fakeVectorStore{hits: someHits()},
		&fakeLLM{response: `{"answer": "Refunds take 5-7 business days.", "self_confidence": 0.9}`},
		nil,
	)

	res, err := o.Query(context.Background(), QueryInput{UserQuery: "where is my refund"})
	assert.NoError(t, err)
	assert.Equal(t, "Refunds take 5-7 business days.", res.Answer)
	// 0.6*0.82 + 0.4*0.9
	assert.InDelta(t, 0.852, res.Confidence, 1e-9)
	assert.Equal(t, "en", res.Language)
	assert.Equal(t, 1, res.RetrievedK)
	assert.Equal(t, "refund-policy#0", res.Sources[0].ChunkId)
	assert.InDelta(t, 0.82, res.Sources[0].Score, 1e-9)
}

func TestQueryEmbeddingDownDegrades(t *testing.T) {
	o := NewOrchestrator(
		&fakeEmbedder{err: embedding.ErrUnavailable},
		&fakeVectorStore{},
		&fakeLLM{},
		nil,
	)

	res, err := o.Query(context.Background(), QueryInput{UserQuery: "refund status"})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Equal(t, 0, res.RetrievedK)
	assert.NotEmpty(t, res.Answer)
}

func TestQueryVectorStoreDownDegrades(t *testing.T) {
	o := NewOrchestrator(
		&fakeEmbedder{},
		&fakeVectorStore{err: errors.New("connection refused")},
		&fakeLLM{},
		nil,
	)

	res, err := o.Query(context.Background(), QueryInput{UserQuery: "मेरा रिफंड कहाँ है", LangHint: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Equal(t, "hi", res.Language)
}

func TestQueryLLMFailureUsesFallbackAnswer(t *testing.T) {
	o := NewOrchestrator(
		&fakeEmbedder{},
		&fakeVectorStore{hits: someHits()},
		&fakeLLM{err: llm.ErrUnavailable},
		nil,
	)

	res, err := o.Query(context.Background(), QueryInput{UserQuery: "where is my refund"})
	assert.NoError(t, err)
	assert.Equal(t, "Based on the available information: Refunds are processed within 5-7 business days.", res.Answer)
	// 0.6*0.82 + 0.4*0.4
	assert.InDelta(t, 0.652, res.Confidence, 1e-9)
}

func TestQueryNoHitsFallback(t *testing.T) {
	o := NewOrchestrator(
		&fakeEmbedder{},
		&fakeVectorStore{},
		&fakeLLM{err: llm.ErrUnavailable},
		nil,
	)

	res, err := o.Query(context.Background(), QueryInput{UserQuery: "where is my refund"})
	assert.NoError(t, err)
	// 0.6*0.0 + 0.4*0.2
	assert.InDelta(t, 0.08, res.Confidence, 1e-9)
	assert.Equal(t, 0, res.RetrievedK)
}

func TestQueryTruncatesOnRuneBoundary(t *testing.T) {
	embedder := &fakeEmbedder{}
	o := NewOrchestrator(
		embedder,
		&fakeVectorStore{},
		&fakeLLM{response: `{"answer": "ok", "self_confidence": 0.5}`},
		nil,
	)
	o.SetLimits(5, 100)

	// Every Devanagari character here is 3 bytes, so a 100 byte cap
	// falls mid-rune unless the cut is moved back to a boundary.
	query := strings.Repeat("रिफंड", 50)
	_, err := o.Query(context.Background(), QueryInput{UserQuery: query, LangHint: "hi"})
	assert.NoError(t, err)

	assert.Len(t, embedder.calls, 1)
	embedded := embedder.calls[0][0]
	assert.LessOrEqual(t, len(embedded), 100)
	assert.True(t, utf8.ValidString(embedded))
}

func TestFirstSentence(t *testing.T) {
	assert.Equal(t, "Hello.", firstSentence("Hello. World."))
	assert.Equal(t, "रिफंड मिल जाएगा।", firstSentence("रिफंड मिल जाएगा। धन्यवाद"))
	assert.Equal(t, "", firstSentence(""))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "", "b", "a"}))
}
