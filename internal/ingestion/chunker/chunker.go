package chunker

import "strings"

const (
	// DefaultChunkSize is the window size in whitespace-delimited words.
	DefaultChunkSize = 300
	// DefaultOverlap is how many words consecutive windows share.
	DefaultOverlap = 50
)

// Split slices text into overlapping word windows. The window starts at
// offset 0 and advances by chunkSize-overlap while the start offset is still
// inside the word list, so a text with W words yields ceil(W/stride) chunks
// and an empty text yields none. Any text longer than one stride gets a
// trailing window covering the tail words, even when they already appeared
// in the previous window. Each window is rejoined with single spaces.
func Split(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	stride := chunkSize - overlap
	chunks := make([]string, 0, (len(words)/stride)+1)
	for start := 0; start < len(words); start += stride {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// SplitDefault applies the pipeline's fixed 300/50 window.
func SplitDefault(text string) []string {
	return Split(text, DefaultChunkSize, DefaultOverlap)
}

// WordCount is the token count persisted per chunk.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
