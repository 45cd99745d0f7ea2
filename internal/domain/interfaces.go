package domain

import "context"

// Embedder converts texts into vector representations, one result per
// input text in the same order. Implementations may require a preparation
// phase over the corpus before embedding.
type Embedder interface {
	Name() string
	Model() string
	Prepare(corpus []string) error
	Embed(ctx context.Context, texts []string) ([]Embedding, error)
}

// Chunker splits a document into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore owns chunk/embedding entries and supports similarity search.
// Searches against dimensionalities or sources the store has never seen
// return empty results, not errors.
type VectorStore interface {
	Upsert(chunks []Chunk, vectors [][]float64, model, provider string) error
	RemoveBySource(sourceID string) int
	Search(query []float64, topK int, minScore float64, sourceFilter []string) []SearchResult
	Stats() Stats
	Clear()
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Completer generates a chat completion for the given system and user
// prompts. Answer assembly is disabled when no Completer is configured.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}
