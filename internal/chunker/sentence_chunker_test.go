package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfrag/internal/domain"
)

func TestNewSentenceChunkerRejectsInvalidConfig(t *testing.T) {
	_, err := NewSentenceChunker(0, 0)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = NewSentenceChunker(-3, 0)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	_, err = NewSentenceChunker(5, -1)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSentenceChunkerGroupsByCount(t *testing.T) {
	c, err := NewSentenceChunker(3, 0)
	require.NoError(t, err)
	text := "One is here. Two is here. Three is here. Four is here. " +
		"Five is here. Six is here. Seven is here."
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, 3, strings.Count(chunks[0].Text, "."))
	assert.Equal(t, 3, strings.Count(chunks[1].Text, "."))
	assert.Equal(t, 1, strings.Count(chunks[2].Text, "."))
	assert.Equal(t, "One is here. Two is here. Three is here.", chunks[0].Text)
	assert.Equal(t, "Seven is here.", chunks[2].Text)
}

func TestSentenceChunkerSevenShortSentences(t *testing.T) {
	c, err := NewSentenceChunker(5, 0)
	require.NoError(t, err)
	chunks, err := c.Chunk(domain.Document{Content: "A. B. C. D. E. F. G."})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "A. B. C. D. E.", chunks[0].Text)
	assert.Equal(t, "F. G.", chunks[1].Text)
}

func TestSentenceChunkerEmptyInput(t *testing.T) {
	c, err := NewSentenceChunker(5, 0)
	require.NoError(t, err)
	chunks, err := c.Chunk(domain.Document{Content: ""})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSentenceChunkerCollapsesNewlines(t *testing.T) {
	c, err := NewSentenceChunker(2, 0)
	require.NoError(t, err)
	chunks, err := c.Chunk(domain.Document{Content: "First line.\nSecond line. Third line."})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "First line. Second line.", chunks[0].Text)
	assert.Equal(t, "Third line.", chunks[1].Text)
}

func TestSentenceChunkerSizeCap(t *testing.T) {
	c, err := NewSentenceChunker(100, 30)
	require.NoError(t, err)
	text := "A fairly long sentence here. Another fairly long one. Short."
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	// The first sentence alone already approaches the cap, so no chunk
	// holds more than two sentences.
	for _, ch := range chunks {
		assert.LessOrEqual(t, strings.Count(ch.Text, "."), 2)
	}
}

func TestSentenceChunkerIndexesAndIDs(t *testing.T) {
	c, err := NewSentenceChunker(1, 0)
	require.NoError(t, err)
	chunks, err := c.Chunk(domain.Document{Content: "A. B. C."})
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, "chunk_"+string(rune('0'+i)), ch.ID)
	}
}
