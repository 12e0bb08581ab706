package chunker

import (
	"fmt"
	"strconv"
	"strings"

	"pdfrag/internal/domain"
)

// breakLookback is how far back from a tentative chunk end we search for
// a whitespace or sentence-punctuation character to break at.
const breakLookback = 50

const breakChars = " \n\t\r.!?;"

// SizeChunker splits text into chunks of at most chunkSize characters with
// a fixed overlap between consecutive chunks. Chunk boundaries prefer
// whitespace or sentence punctuation within the lookback window; if none is
// found there, a chunk may end mid-word.
type SizeChunker struct {
	chunkSize int
	overlap   int
}

// NewSizeChunker validates the parameters before any text is touched.
func NewSizeChunker(chunkSize, overlap int) (*SizeChunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfiguration, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, chunk size), got %d", domain.ErrConfiguration, overlap)
	}
	return &SizeChunker{chunkSize: chunkSize, overlap: overlap}, nil
}

func (c *SizeChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	// Chunk size, overlap and lookback are counted in runes so boundaries
	// never land inside a multi-byte sequence.
	text := []rune(document.Content)
	var chunks []domain.Chunk
	start := 0
	idx := 0
	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		if end < len(text) {
			low := end - breakLookback
			if low < start {
				low = start
			}
			for i := end; i > low; i-- {
				if strings.ContainsRune(breakChars, text[i]) {
					end = i + 1
					break
				}
			}
		}
		chunks = append(chunks, domain.Chunk{
			ID:    "chunk_" + strconv.Itoa(idx),
			Text:  string(text[start:end]),
			Index: idx,
		})
		idx++
		next := end - c.overlap
		if next <= start {
			// A break point shortened the chunk below the overlap;
			// advance past it instead of re-covering the same span.
			next = end
		}
		start = next
	}
	return chunks, nil
}
