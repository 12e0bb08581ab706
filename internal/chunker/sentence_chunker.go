package chunker

import (
	"fmt"
	"strconv"
	"strings"

	"pdfrag/internal/domain"
)

// SentenceChunker groups sentences into chunks of at most maxSentences
// sentences each, optionally capped at maxChunkSize characters.
//
// Sentence boundaries are approximated by splitting on the literal ". "
// sequence. This mis-splits on abbreviations, decimals and ellipses; the
// heuristic is a documented limitation kept for predictability.
type SentenceChunker struct {
	maxSentences int
	maxChunkSize int // 0 disables the size cap
}

func NewSentenceChunker(maxSentences, maxChunkSize int) (*SentenceChunker, error) {
	if maxSentences <= 0 {
		return nil, fmt.Errorf("%w: max sentences must be positive, got %d", domain.ErrConfiguration, maxSentences)
	}
	if maxChunkSize < 0 {
		return nil, fmt.Errorf("%w: max chunk size must not be negative, got %d", domain.ErrConfiguration, maxChunkSize)
	}
	return &SentenceChunker{maxSentences: maxSentences, maxChunkSize: maxChunkSize}, nil
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	sentences := splitSentences(document.Content)
	var chunks []domain.Chunk
	var current []string
	size := 0
	idx := 0
	for _, sentence := range sentences {
		full := len(current) >= c.maxSentences ||
			(c.maxChunkSize > 0 && size+len(sentence) > c.maxChunkSize)
		if full && len(current) > 0 {
			chunks = append(chunks, newChunk(strings.Join(current, " "), idx))
			idx++
			current = nil
			size = 0
		}
		current = append(current, sentence)
		size += len(sentence)
	}
	if len(current) > 0 {
		chunks = append(chunks, newChunk(strings.Join(current, " "), idx))
	}
	return chunks, nil
}

// splitSentences collapses newlines to spaces, splits on ". " and restores
// the trailing period each fragment lost to the split.
func splitSentences(text string) []string {
	normalized := strings.ReplaceAll(text, "\n", " ")
	var sentences []string
	for _, fragment := range strings.Split(normalized, ". ") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		if !strings.HasSuffix(fragment, ".") {
			fragment += "."
		}
		sentences = append(sentences, fragment)
	}
	return sentences
}

func newChunk(text string, idx int) domain.Chunk {
	return domain.Chunk{
		ID:    "chunk_" + strconv.Itoa(idx),
		Text:  text,
		Index: idx,
	}
}
