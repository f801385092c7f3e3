package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestSplitEmpty(t *testing.T) {
	assert.Nil(t, Split("", DefaultOptions()))
	assert.Nil(t, Split("   \n\t ", DefaultOptions()))
}

func TestSplitShortDocumentSingleChunk(t *testing.T) {
	text := makeWords(300)
	chunks := Split(text, DefaultOptions())
	assert.Len(t, chunks, 1)
	assert.Equal(t, 300, CountWords(chunks[0]))
}

func TestSplitLongDocument(t *testing.T) {
	text := makeWords(2200)
	chunks := Split(text, DefaultOptions())
	assert.Len(t, chunks, 3)

	for i, chunk := range chunks {
		n := CountWords(chunk)
		assert.LessOrEqual(t, n, DefaultMaxWords, "chunk %d too large", i)
		if i < len(chunks)-1 {
			assert.GreaterOrEqual(t, n, DefaultMinWords, "chunk %d too small", i)
		}
	}

	// Consecutive chunks overlap by the configured window.
	first := strings.Fields(chunks[0])
	second := strings.Fields(chunks[1])
	assert.Equal(t, first[len(first)-DefaultOverlap:], second[:DefaultOverlap])
}

func TestSplitMergesTinyTail(t *testing.T) {
	opts := Options{MinWords: 50, MaxWords: 120, TargetWords: 80, Overlap: 10}
	chunks := Split(makeWords(170), opts)
	assert.Len(t, chunks, 2)
	// The 30-word tail was folded into the second chunk.
	assert.Equal(t, 110, CountWords(chunks[1]))
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("  one two\nthree "))
}
