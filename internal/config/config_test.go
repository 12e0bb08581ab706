package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "size", cfg.Chunker.Type)
	assert.Equal(t, 1000, cfg.Chunker.ChunkSize)
	require.NotNil(t, cfg.Chunker.Overlap)
	assert.Equal(t, 100, *cfg.Chunker.Overlap)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("chunker:\n  type: sentence\nembedder:\n  type: gemini\n  gemini: {}\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sentence", cfg.Chunker.Type)
	assert.Equal(t, 5, cfg.Chunker.MaxSentences)
	require.NotNil(t, cfg.Embedder.Gemini)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Embedder.Gemini.APIKeyEnv)
	assert.Equal(t, "gemini-embedding-001", cfg.Embedder.Gemini.Model)
	assert.Equal(t, 768, cfg.Embedder.Gemini.Dimension)
	require.NotNil(t, cfg.Answerer.Gemini)
	assert.Equal(t, "gemini-2.0-flash", cfg.Answerer.Gemini.Model)
}

func TestLoadKeepsExplicitZeroOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("chunker:\n  type: size\n  chunk_size: 200\n  overlap: 0\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Chunker.Overlap)
	assert.Equal(t, 0, *cfg.Chunker.Overlap)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := defaultConfig()
	cfg.Chunker.ChunkSize = 512
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, loaded.Chunker.ChunkSize)
	assert.Equal(t, cfg.VectorStore.Type, loaded.VectorStore.Type)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker: [nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
