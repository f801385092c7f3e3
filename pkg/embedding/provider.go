package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable marks embedding-provider failures. Callers need to tell
// "provider down" apart from an empty result, so every transport or API
// error maps to this sentinel.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Provider defines the interface for generating text embeddings
type Provider interface {
	// EmbedTexts embeds all texts in one batch call, preserving order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
