package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfrag/internal/domain"
)

func TestNewSizeChunkerRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name      string
		chunkSize int
		overlap   int
	}{
		{"zero chunk size", 0, 0},
		{"negative chunk size", -10, 0},
		{"overlap equals chunk size", 100, 100},
		{"overlap exceeds chunk size", 100, 150},
		{"negative overlap", 100, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSizeChunker(tc.chunkSize, tc.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestSizeChunkerEmptyText(t *testing.T) {
	c, err := NewSizeChunker(100, 10)
	require.NoError(t, err)
	chunks, err := c.Chunk(domain.Document{Content: ""})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSizeChunkerShortText(t *testing.T) {
	c, err := NewSizeChunker(1000, 100)
	require.NoError(t, err)
	text := "A short document that fits in one chunk."
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0].Text)
	assert.Equal(t, "chunk_0", chunks[0].ID)
}

func TestSizeChunkerNoOverlapCoversAllText(t *testing.T) {
	c, err := NewSizeChunker(40, 0)
	require.NoError(t, err)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	var rebuilt strings.Builder
	for _, ch := range chunks {
		rebuilt.WriteString(ch.Text)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSizeChunkerOverlapReconstructsText(t *testing.T) {
	const overlap = 10
	c, err := NewSizeChunker(60, overlap)
	require.NoError(t, err)
	text := strings.Repeat("Retrieval augmented generation grounds answers in context. ", 15)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	rebuilt := chunks[0].Text
	for _, ch := range chunks[1:] {
		require.GreaterOrEqual(t, len(ch.Text), overlap)
		assert.Equal(t, rebuilt[len(rebuilt)-overlap:], ch.Text[:overlap])
		rebuilt += ch.Text[overlap:]
	}
	assert.Equal(t, text, rebuilt)
}

func TestSizeChunkerBoundedAndBreaksCleanly(t *testing.T) {
	c, err := NewSizeChunker(50, 5)
	require.NoError(t, err)
	text := strings.Repeat("Vector stores answer nearest neighbour queries fast. ", 10)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	for i, ch := range chunks {
		// Break search may include the character at the tentative end.
		assert.LessOrEqual(t, len(ch.Text), 51)
		if i < len(chunks)-1 {
			last := ch.Text[len(ch.Text)-1]
			assert.Contains(t, " \n\t\r.!?;", string(last))
		}
	}
}

func TestSizeChunkerDeterministic(t *testing.T) {
	c, err := NewSizeChunker(30, 7)
	require.NoError(t, err)
	doc := domain.Document{Content: strings.Repeat("Determinism makes ingestion reproducible. ", 8)}
	first, err := c.Chunk(doc)
	require.NoError(t, err)
	second, err := c.Chunk(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSizeChunkerKeepsMultiByteRunesIntact(t *testing.T) {
	c, err := NewSizeChunker(5, 0)
	require.NoError(t, err)
	// No break characters, so every boundary is forced at exactly the
	// chunk size. Counting bytes instead of runes would split "é".
	text := strings.Repeat("é", 10)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	var rebuilt strings.Builder
	for i, ch := range chunks {
		assert.True(t, utf8.ValidString(ch.Text), "chunk %d is invalid UTF-8: %q", i, ch.Text)
		assert.Equal(t, 5, utf8.RuneCountInString(ch.Text))
		rebuilt.WriteString(ch.Text)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestSizeChunkerOverlapCountsRunes(t *testing.T) {
	c, err := NewSizeChunker(6, 2)
	require.NoError(t, err)
	text := strings.Repeat("日本語テキスト", 4)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	prev := []rune(chunks[0].Text)
	for _, ch := range chunks[1:] {
		cur := []rune(ch.Text)
		assert.True(t, utf8.ValidString(ch.Text))
		assert.Equal(t, string(prev[len(prev)-2:]), string(cur[:2]))
		prev = cur
	}
}

func TestSizeChunkerTerminatesOnUnbreakableRun(t *testing.T) {
	c, err := NewSizeChunker(10, 8)
	require.NoError(t, err)
	// No whitespace or punctuation anywhere, so every break search fails.
	text := strings.Repeat("x", 95)
	chunks, err := c.Chunk(domain.Document{Content: text})
	require.NoError(t, err)
	var rebuilt string
	rebuilt = chunks[0].Text
	for _, ch := range chunks[1:] {
		rebuilt = rebuilt[:len(rebuilt)-8] + ch.Text
	}
	assert.Equal(t, text, rebuilt)
}
