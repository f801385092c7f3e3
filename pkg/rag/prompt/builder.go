package prompt

import (
	"fmt"
	"strings"

	"ai-support-chat-be/pkg/store"
	"ai-support-chat-be/pkg/vectorstore"
)

const maxHistoryTurns = 10

// ContextualBuilder builds the grounded answering prompts for one query.
type ContextualBuilder struct {
	language string
	query    string
	chunks   []vectorstore.Hit
	history  []store.Turn
}

// NewContextualBuilder creates a new contextual prompt builder
func NewContextualBuilder(language, query string, chunks []vectorstore.Hit, history []store.Turn) *ContextualBuilder {
	return &ContextualBuilder{
		language: language,
		query:    query,
		chunks:   chunks,
		history:  history,
	}
}

// System returns the system prompt. The model must answer only from
// the supplied context and report self_confidence alongside the answer.
func (b *ContextualBuilder) System() string {
	var prompt strings.Builder

	prompt.WriteString("You are BookMyShow support assistant. ")
	prompt.WriteString("Answer ONLY using the provided context. ")
	prompt.WriteString("If the context is insufficient, say you cannot confirm from the knowledge base and offer to create a support ticket here. ")
	prompt.WriteString("Do NOT suggest live chat, email, WhatsApp, phone, or external channels unless explicitly mentioned in the context and directly relevant. ")
	prompt.WriteString("Return a JSON object with keys: answer, self_confidence (0-1). ")
	if b.language == "hi" {
		prompt.WriteString("Respond ONLY in Hindi (Devanagari). Do not include English.")
	} else {
		prompt.WriteString("Respond in English.")
	}

	return prompt.String()
}

// User returns the user prompt with history, context chunks and the question.
func (b *ContextualBuilder) User() string {
	var prompt strings.Builder

	b.writeHistory(&prompt)
	b.writeContext(&prompt)
	b.writeQuestion(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writeHistory(prompt *strings.Builder) {
	history := b.history
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	var lines []string
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		role := turn.Role
		if role == "" {
			role = store.RoleUser
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, content))
	}
	if len(lines) == 0 {
		return
	}

	prompt.WriteString("Conversation History:\n")
	prompt.WriteString(strings.Join(lines, "\n"))
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("Context:\n")
	if len(b.chunks) == 0 {
		prompt.WriteString("(no relevant context found)")
	} else {
		blocks := make([]string, len(b.chunks))
		for i, chunk := range b.chunks {
			blocks[i] = fmt.Sprintf("[%s] %s\n%s", chunk.Payload.ChunkId, chunk.Payload.Title, chunk.Payload.Text)
		}
		prompt.WriteString(strings.Join(blocks, "\n\n"))
	}
	prompt.WriteString("\n\n")
}

func (b *ContextualBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("Question:\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n\n")
	prompt.WriteString("Respond with JSON only.")
}
