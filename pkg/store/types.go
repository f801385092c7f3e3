package store

// Source represents a single retrieval hit attached to an assistant reply
type Source struct {
	ChunkId   string  `json:"chunk_id"`
	DocId     string  `json:"doc_id"`
	Title     string  `json:"title"`
	SourceURL string  `json:"source_url"`
	Score     float64 `json:"score"`
}

// Turn represents one message within a conversation, oldest-first in history
type Turn struct {
	Role       string   `json:"role"` // "user" | "assistant"
	Content    string   `json:"content"`
	Confidence *float64 `json:"confidence,omitempty"`
	Sources    []Source `json:"sources,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TopScore returns the highest score across sources, or nil when empty
func TopScore(sources []Source) *float64 {
	if len(sources) == 0 {
		return nil
	}
	top := 0.0
	for _, s := range sources {
		if s.Score > top {
			top = s.Score
		}
	}
	return &top
}
