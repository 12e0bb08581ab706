package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeKeepsAtMostMaxSentences(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Vector stores index embeddings. Embeddings capture meaning. " +
		"Cats sleep a lot. Retrieval finds relevant embeddings. " +
		"Generation uses retrieved context."
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, strings.Count(out, "."), 2)
	assert.NotEmpty(t, out)
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Alpha comes first. Beta comes second. Gamma comes third."
	out, err := s.Summarize(text, 3)
	require.NoError(t, err)
	a := strings.Index(out, "Alpha")
	b := strings.Index(out, "Beta")
	c := strings.Index(out, "Gamma")
	assert.True(t, a < b && b < c, out)
}

func TestSummarizeTextWithoutSentences(t *testing.T) {
	s := NewFrequencySummarizer()
	out, err := s.Summarize("  just a fragment without punctuation  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "just a fragment without punctuation", out)
}
