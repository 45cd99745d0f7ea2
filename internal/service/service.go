// Package service orchestrates the retrieval pipeline: documents are
// chunked, embedded and indexed, and queries are embedded, searched and
// assembled into ranked context.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docsearch/internal/domain"
)

// DefaultTopK is the number of results returned when the caller does not
// ask for a specific count.
const DefaultTopK = 5

// RetrievalState distinguishes structurally why a retrieval carries no
// results. "No data" and "no matches above threshold" are different states
// the caller must be able to tell apart.
type RetrievalState int

const (
	// StateOK means ranked results were found.
	StateOK RetrievalState = iota
	// StateNoData means the index holds no entries of any dimensionality.
	StateNoData
	// StateNoMatches means entries exist but none cleared the threshold.
	StateNoMatches
)

// RetrievalResult is the outcome of one retrieval: the ranked results and
// the assembled context for downstream prompt construction.
type RetrievalResult struct {
	State   RetrievalState
	Results []domain.SearchResult
	Context string
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	Documents int
	Chunks    int
	Summary   string
}

// Service wires the chunker, embedder, vector index and summarizer into
// the ingestion and retrieval operations. The completer is optional;
// answer assembly is disabled when it is nil.
type Service struct {
	chunker             domain.Chunker
	embedder            domain.Embedder
	store               domain.VectorStore
	summarizer          domain.Summarizer
	completer           domain.Completer
	summaryMaxSentences int
}

// New creates a Service. The store instance is owned by the hosting
// application and passed in explicitly.
func New(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, summarizer domain.Summarizer, completer domain.Completer, summaryMaxSentences int) *Service {
	return &Service{
		chunker:             chunker,
		embedder:            embedder,
		store:               store,
		summarizer:          summarizer,
		completer:           completer,
		summaryMaxSentences: summaryMaxSentences,
	}
}

// Ingest chunks and embeds the documents and inserts them into the index.
// The embedder call happens without any index lock held; the index is only
// locked during the insert itself.
func (s *Service) Ingest(ctx context.Context, documents []domain.Document) (*IngestReport, error) {
	if len(documents) == 0 {
		return nil, errors.New("no documents to ingest")
	}
	var chunks []domain.Chunk
	var texts []string
	var corpus strings.Builder
	for _, doc := range documents {
		docChunks, err := s.chunker.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.SourceID, err)
		}
		for _, ch := range docChunks {
			chunks = append(chunks, ch)
			texts = append(texts, ch.Text)
		}
		corpus.WriteString("\n")
		corpus.WriteString(doc.Content)
	}
	if len(chunks) == 0 {
		return nil, errors.New("documents contained no chunkable text")
	}

	if err := s.embedder.Prepare(texts); err != nil {
		return nil, fmt.Errorf("preparing embedder: %w", err)
	}
	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(embeddings))
	for i, emb := range embeddings {
		if len(emb.Vector) == 0 {
			return nil, fmt.Errorf("%w: chunk %s", domain.ErrEmbeddingFailure, chunks[i].ID)
		}
		vectors[i] = emb.Vector
	}
	if err := s.store.Upsert(chunks, vectors, s.embedder.Model(), s.embedder.Name()); err != nil {
		return nil, err
	}

	summary := ""
	if s.summarizer != nil {
		summary, err = s.summarizer.Summarize(corpus.String(), s.summaryMaxSentences)
		if err != nil {
			return nil, fmt.Errorf("summarizing corpus: %w", err)
		}
	}
	return &IngestReport{Documents: len(documents), Chunks: len(chunks), Summary: summary}, nil
}

// Retrieve embeds the query, searches the index and assembles a ranked
// context. An empty index short-circuits into the distinct no-data state
// before the embedder is called.
func (s *Service) Retrieve(ctx context.Context, query string, topK int, minScore float64, sourceFilter []string) (*RetrievalResult, error) {
	if s.store.Stats().TotalEntries == 0 {
		return &RetrievalResult{State: StateNoData}, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 || len(embeddings[0].Vector) == 0 {
		return nil, fmt.Errorf("%w: query %q", domain.ErrEmbeddingFailure, query)
	}
	results := s.store.Search(embeddings[0].Vector, topK, minScore, sourceFilter)
	if len(results) == 0 {
		return &RetrievalResult{State: StateNoMatches}, nil
	}
	return &RetrievalResult{
		State:   StateOK,
		Results: results,
		Context: assembleContext(results),
	}, nil
}

// Answer retrieves context for the question and asks the completion
// collaborator to answer from it. When retrieval produced no usable
// context, the retrieval result is returned with an empty answer so the
// caller can surface the exact state.
func (s *Service) Answer(ctx context.Context, query string, topK int, minScore float64, sourceFilter []string) (string, *RetrievalResult, error) {
	if s.completer == nil {
		return "", nil, errors.New("no completion service configured")
	}
	retrieval, err := s.Retrieve(ctx, query, topK, minScore, sourceFilter)
	if err != nil {
		return "", nil, err
	}
	if retrieval.State != StateOK {
		return "", retrieval, nil
	}
	system := "You answer questions strictly from the provided document context. If the context does not contain the answer, say so."
	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", retrieval.Context, query)
	answer, err := s.completer.Complete(ctx, system, prompt)
	if err != nil {
		return "", nil, err
	}
	return answer, retrieval, nil
}

// RemoveSource removes every indexed chunk of the source and reports how
// many entries were dropped.
func (s *Service) RemoveSource(sourceID string) int {
	return s.store.RemoveBySource(sourceID)
}

// Stats reports the current index aggregates.
func (s *Service) Stats() domain.Stats {
	return s.store.Stats()
}

// Reset discards all index state, e.g. before a full reprocessing run.
func (s *Service) Reset() {
	s.store.Clear()
}

// assembleContext concatenates ranked chunk texts, each tagged with its
// rank position. The context preserves rank order, not document order.
func assembleContext(results []domain.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, r.Chunk.Text)
	}
	return b.String()
}
