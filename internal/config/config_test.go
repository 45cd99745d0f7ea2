package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/chunker"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, chunker.DefaultChunkSize, cfg.Chunker.ChunkSize)
	assert.Equal(t, chunker.DefaultOverlap, cfg.Chunker.Overlap)
	assert.Equal(t, chunker.DefaultMinChunkSize, cfg.Chunker.MinChunkSize)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Empty(t, cfg.LLM.Type)
}

func TestLoad_AppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
chunker:
  chunk_size: 800
embedder:
  type: openai
  openai:
    model: text-embedding-3-large
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chunker.ChunkSize)
	assert.Equal(t, chunker.DefaultOverlap, cfg.Chunker.Overlap)
	assert.Equal(t, "openai", cfg.Embedder.Type)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.TopK = 12
	cfg.Retrieval.MinScore = 0.25

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Retrieval.TopK)
	assert.Equal(t, 0.25, loaded.Retrieval.MinScore)
}
