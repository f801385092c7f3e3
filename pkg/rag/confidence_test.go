package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.5, 0, 1))
	assert.Equal(t, 0.3, Clamp(0.3, 0, 1))
}

func TestFuseConfidence(t *testing.T) {
	tests := []struct {
		name     string
		topScore *float64
		self     *float64
		want     float64
	}{
		{"both present", ptr(0.8), ptr(0.6), 0.72},
		{"both nil", nil, nil, 0.0},
		{"only retrieval", ptr(0.5), nil, 0.5},
		{"only self", nil, ptr(0.9), 0.9},
		{"clamped high", ptr(2.0), ptr(1.5), 1.0},
		{"clamped low", ptr(-1.0), nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FuseConfidence(tt.topScore, tt.self), 1e-9)
		})
	}
}
