// Package openai provides an embedder backed by the OpenAI embeddings API.
package openai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"docsearch/internal/domain"
)

// Ensure Embedder implements the interface.
var _ domain.Embedder = (*Embedder)(nil)

// Config configures the OpenAI embedder.
type Config struct {
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string
	// BaseURL overrides the API endpoint for OpenAI-compatible servers.
	BaseURL string
	// Model is the embedding model, e.g. text-embedding-3-small.
	Model string
}

// Embedder generates embeddings through the OpenAI API.
type Embedder struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI embedder from the given configuration.
func New(cfg Config) (*Embedder, error) {
	keyEnv := cfg.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", keyEnv)
	}
	model := cfg.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	clientCfg := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Embedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Name returns the provider identifier of this embedder.
func (e *Embedder) Name() string { return "openai" }

// Model returns the embedding model identifier.
func (e *Embedder) Model() string { return e.model }

// Prepare is a no-op; remote models need no corpus preparation.
func (e *Embedder) Prepare(_ []string) error { return nil }

// Embed requests embeddings for all texts in one API call and returns one
// result per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([]domain.Embedding, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbedderUnavailable, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: requested %d embeddings, got %d", domain.ErrEmbeddingFailure, len(texts), len(resp.Data))
	}
	out := make([]domain.Embedding, len(texts))
	for _, d := range resp.Data {
		if len(d.Embedding) == 0 {
			return nil, fmt.Errorf("%w: empty vector at index %d", domain.ErrEmbeddingFailure, d.Index)
		}
		vec := make([]float64, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float64(v)
		}
		out[d.Index] = domain.Embedding{
			Vector:     vec,
			Dimensions: len(vec),
			Model:      e.model,
			Provider:   e.Name(),
		}
	}
	return out, nil
}
