package chunker

import "strings"

// Word-based chunking as a token approximation. For mixed English/Hindi
// support articles ~1 word ~= 1 token, so targeting 800 words with overlap
// keeps chunks within the completion model's 500-1000 token window.

const (
	DefaultMinWords    = 500
	DefaultMaxWords    = 1000
	DefaultTargetWords = 800
	DefaultOverlap     = 80
)

// Options controls the word-window splitter.
type Options struct {
	MinWords    int
	MaxWords    int
	TargetWords int
	Overlap     int
}

// DefaultOptions returns the splitter settings used at ingestion time.
func DefaultOptions() Options {
	return Options{
		MinWords:    DefaultMinWords,
		MaxWords:    DefaultMaxWords,
		TargetWords: DefaultTargetWords,
		Overlap:     DefaultOverlap,
	}
}

// Split cuts text into overlapping word windows. Every chunk except the
// final one holds between MinWords and MaxWords; a tiny trailing chunk is
// merged into its predecessor when the merge stays within MaxWords.
func Split(text string, opts Options) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	if len(words) <= opts.MaxWords {
		return []string{strings.Join(words, " ")}
	}

	var chunks []string
	start := 0
	for start < len(words) {
		end := start + opts.TargetWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
		start = end - opts.Overlap
		if start < 0 {
			start = 0
		}
	}

	// Merge a tiny tail into the previous chunk, keeping it <= MaxWords.
	if len(chunks) >= 2 {
		last := strings.Fields(chunks[len(chunks)-1])
		if len(last) < opts.MinWords {
			prev := strings.Fields(chunks[len(chunks)-2])
			if len(prev)+len(last) <= opts.MaxWords {
				merged := append(prev, last...)
				chunks[len(chunks)-2] = strings.Join(merged, " ")
				chunks = chunks[:len(chunks)-1]
			}
		}
	}

	return chunks
}

// CountWords reports the word count used by the chunk-size invariants.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
