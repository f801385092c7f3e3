package rag

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"ai-support-chat-be/pkg/classifier"
	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/llm"
	"ai-support-chat-be/pkg/rag/prompt"
	"ai-support-chat-be/pkg/store"
	"ai-support-chat-be/pkg/vectorstore"
)

// ErrEmptyDocument is returned when an ingest request carries no usable text.
var ErrEmptyDocument = errors.New("empty document")

// ErrEmptyQuery is returned when a query request carries no usable text.
var ErrEmptyQuery = errors.New("empty query")

const (
	DefaultTopK          = 5
	DefaultMaxQueryChars = 4000
)

// Orchestrator runs the grounded answering pipeline: embed the query,
// retrieve nearest chunks, generate a grounded answer and fuse confidence.
type Orchestrator struct {
	embedder    embedding.Provider
	vectors     vectorstore.Store
	llmProvider llm.LLMProvider
	logger      *log.Logger

	topK          int
	maxQueryChars int
}

func NewOrchestrator(embedder embedding.Provider, vectors vectorstore.Store, llmProvider llm.LLMProvider, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		embedder:      embedder,
		vectors:       vectors,
		llmProvider:   llmProvider,
		logger:        logger,
		topK:          DefaultTopK,
		maxQueryChars: DefaultMaxQueryChars,
	}
}

// SetLimits overrides the retrieval depth and query length cap.
// Non-positive values keep the defaults.
func (o *Orchestrator) SetLimits(topK, maxQueryChars int) {
	if topK > 0 {
		o.topK = topK
	}
	if maxQueryChars > 0 {
		o.maxQueryChars = maxQueryChars
	}
}

type IngestInput struct {
	DocId     string
	Title     string
	Text      string
	Language  string
	SourceURL string
	Tags      []string
	Chunks    []string
}

type QueryInput struct {
	SessionId string
	UserQuery string
	LangHint  string
	TopK      int
	History   []store.Turn
}

type QueryResult struct {
	Answer     string
	Confidence float64
	Language   string
	Sources    []store.Source
	RetrievedK int
}

// SafeResponse is the degraded answer used when a backend is down.
// Confidence 0.0 signals the caller to escalate rather than retry.
func SafeResponse(language string) *QueryResult {
	answer := "I couldn't confirm this from the knowledge base. I can create a support ticket for you here."
	if language == classifier.LangHI {
		answer = "मुझे नॉलेज बेस से पुष्टि नहीं मिल पाई। मैं यहां सपोर्ट टिकट बना सकता हूँ।"
	}
	return &QueryResult{
		Answer:     answer,
		Confidence: 0.0,
		Language:   language,
		Sources:    []store.Source{},
		RetrievedK: 0,
	}
}

// Ingest chunks a document, embeds the chunks and upserts them into the
// vector index. Returns the number of chunks indexed.
func (o *Orchestrator) Ingest(ctx context.Context, input IngestInput) (int, error) {
	chunks := input.Chunks
	if len(chunks) == 0 {
		return 0, ErrEmptyDocument
	}

	vectors, err := o.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return 0, err
	}
	if len(vectors) == 0 {
		return 0, ErrEmptyDocument
	}
	if err := o.vectors.EnsureReady(ctx, len(vectors[0])); err != nil {
		return 0, err
	}

	// Re-ingesting a shorter document must not leave stale chunks behind.
	if err := o.vectors.DeleteByDocId(ctx, input.DocId); err != nil {
		o.logger.Printf("[INGEST] stale chunk cleanup failed for %s: %v", input.DocId, err)
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		chunkId := fmt.Sprintf("%s#%d", input.DocId, i)
		points[i] = vectorstore.Point{
			Id:     chunkId,
			Vector: vectors[i],
			Payload: vectorstore.Payload{
				DocId:     input.DocId,
				ChunkId:   chunkId,
				Index:     i,
				Title:     input.Title,
				SourceURL: input.SourceURL,
				Language:  input.Language,
				Tags:      input.Tags,
				Text:      chunk,
			},
		}
	}
	if err := o.vectors.Upsert(ctx, points); err != nil {
		return 0, err
	}
	return len(points), nil
}

// Query answers a user question from the knowledge base. Backend
// failures degrade to SafeResponse instead of surfacing an error.
func (o *Orchestrator) Query(ctx context.Context, input QueryInput) (*QueryResult, error) {
	userQuery := strings.TrimSpace(input.UserQuery)
	if userQuery == "" {
		return nil, ErrEmptyQuery
	}

	romanHindi := classifier.RomanHindiDecision(userQuery) == classifier.DecisionHindi
	language := input.LangHint
	if language == "" {
		language = classifier.DetectScript(userQuery)
	}
	if input.LangHint == classifier.LangEN {
		romanHindi = false
	}
	if romanHindi {
		language = classifier.LangHI
	}

	if len(userQuery) > o.maxQueryChars {
		// Back up to a rune boundary so a multi-byte character is
		// never split mid-sequence.
		cut := o.maxQueryChars
		for cut > 0 && !utf8.RuneStart(userQuery[cut]) {
			cut--
		}
		o.logger.Printf("[QUERY] truncated from %d to %d chars", len(userQuery), cut)
		userQuery = userQuery[:cut]
	}

	// Roman Hindi queries are rewritten into Devanagari and English so
	// both language slices of the knowledge base are searchable.
	var candidateTexts []string
	queryForPrompt := userQuery
	if romanHindi {
		converted := o.romanHindiConvert(ctx, userQuery)
		if hiText := converted["hi"]; hiText != "" {
			candidateTexts = append(candidateTexts, hiText)
			queryForPrompt = hiText
		}
		if enText := converted["en"]; enText != "" {
			candidateTexts = append(candidateTexts, enText)
		}
	}
	candidateTexts = append(candidateTexts, userQuery)
	uniqueTexts := dedupe(candidateTexts)

	vectors, err := o.embedder.EmbedTexts(ctx, uniqueTexts)
	if err != nil {
		o.logger.Printf("[QUERY] embedding unavailable: %v", err)
		return SafeResponse(language), nil
	}

	topK := input.TopK
	if topK <= 0 {
		topK = o.topK
	}

	// Winner-take-all across candidate queries: keep the whole result
	// set whose top hit scored highest, never merge sets.
	var bestHits []vectorstore.Hit
	bestScore := -1.0
	for _, vector := range vectors {
		hits, err := o.vectors.Search(ctx, vector, topK, "")
		if err != nil {
			o.logger.Printf("[QUERY] vector store unavailable: %v", err)
			return SafeResponse(language), nil
		}
		score := 0.0
		if len(hits) > 0 {
			score = hits[0].Score
		}
		if score > bestScore {
			bestScore = score
			bestHits = hits
		}
	}

	builder := prompt.NewContextualBuilder(language, queryForPrompt, bestHits, input.History)
	answer, selfConfidence := o.generate(ctx, builder, language, bestHits)

	topScore := 0.0
	if len(bestHits) > 0 {
		topScore = bestHits[0].Score
	}
	confidence := FuseConfidence(&topScore, selfConfidence)

	sources := make([]store.Source, len(bestHits))
	for i, hit := range bestHits {
		sources[i] = store.Source{
			ChunkId:   hit.Payload.ChunkId,
			DocId:     hit.Payload.DocId,
			Title:     hit.Payload.Title,
			SourceURL: hit.Payload.SourceURL,
			Score:     hit.Score,
		}
	}

	return &QueryResult{
		Answer:     answer,
		Confidence: confidence,
		Language:   language,
		Sources:    sources,
		RetrievedK: len(bestHits),
	}, nil
}

func (o *Orchestrator) generate(ctx context.Context, builder *prompt.ContextualBuilder, language string, hits []vectorstore.Hit) (string, *float64) {
	content, err := o.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: builder.System()},
		{Role: "user", Content: builder.User()},
	}, llm.WithTemperature(0.2), llm.WithJSONMode())
	if err != nil {
		o.logger.Printf("[QUERY] chat failed, using fallback answer: %v", err)
		answer, conf := fallbackAnswer(language, hits)
		return answer, &conf
	}

	parsed := parseJSONObject(content)
	if parsed == nil {
		return strings.TrimSpace(content), nil
	}
	answer := jsonString(parsed, "answer")
	if answer == "" {
		answer = strings.TrimSpace(content)
	}
	return answer, jsonFloat(parsed, "self_confidence")
}

func (o *Orchestrator) romanHindiConvert(ctx context.Context, text string) map[string]string {
	content, err := o.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: "Convert the following Roman Hindi text into Hindi (Devanagari) and English. Return STRICT JSON only with keys: hi, en, language."},
		{Role: "user", Content: text},
	}, llm.WithTemperature(0.1), llm.WithJSONMode())
	if err != nil {
		o.logger.Printf("[QUERY] roman-hindi conversion failed: %v", err)
		return map[string]string{}
	}
	parsed := parseJSONObject(content)
	if parsed == nil {
		return map[string]string{}
	}
	return map[string]string{
		"hi": jsonString(parsed, "hi"),
		"en": jsonString(parsed, "en"),
	}
}

// fallbackAnswer is the deterministic answer used when generation fails:
// 0.2 confidence with no chunks, 0.4 quoting the top chunk's first sentence.
func fallbackAnswer(language string, hits []vectorstore.Hit) (string, float64) {
	if len(hits) == 0 {
		if language == classifier.LangHI {
			return "मुझे नॉलेज बेस से पुष्टि नहीं मिल पाई। मैं यहां सपोर्ट टिकट बना सकता हूँ।", 0.2
		}
		return "I couldn't confirm this from the knowledge base. I can create a support ticket for you here.", 0.2
	}

	sentence := firstSentence(hits[0].Payload.Text)
	if language == classifier.LangHI {
		return fmt.Sprintf("उपलब्ध जानकारी के अनुसार: %s", sentence), 0.4
	}
	return fmt.Sprintf("Based on the available information: %s", sentence), 0.4
}

func firstSentence(text string) string {
	if text == "" {
		return ""
	}
	for _, sep := range []string{".", "।", "?", "!"} {
		if idx := strings.Index(text, sep); idx != -1 {
			return strings.TrimSpace(text[:idx]) + sep
		}
	}
	trimmed := []rune(strings.TrimSpace(text))
	if len(trimmed) > 240 {
		trimmed = trimmed[:240]
	}
	return string(trimmed)
}

func dedupe(texts []string) []string {
	var unique []string
	for _, text := range texts {
		if text == "" {
			continue
		}
		seen := false
		for _, u := range unique {
			if u == text {
				seen = true
				break
			}
		}
		if !seen {
			unique = append(unique, text)
		}
	}
	return unique
}
