// Package memory provides the in-memory vector index with brute-force
// cosine ranking.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"docsearch/internal/domain"
)

// Ensure Store implements the interface.
var _ domain.VectorStore = (*Store)(nil)

// entry owns one chunk and its embedding. dimensions is recorded once at
// insert time and is the only key used for dimensional compatibility
// checks during search.
type entry struct {
	chunk      domain.Chunk
	vector     []float64
	dimensions int
	model      string
	provider   string
	insertedAt time.Time
	seq        uint64
}

// Store is an in-memory vector index. Queries are brute-force linear scans
// over a candidate set pruned by the dimension and source secondary
// indices; for single-user corpus sizes this is preferred over
// approximate nearest-neighbour structures.
//
// All mutation happens in a single-writer critical section together with
// the secondary-index updates, so no reader observes an entry present in
// the primary store but missing from an index, or vice versa.
type Store struct {
	mu          sync.RWMutex
	entries     map[string]*entry
	bySource    map[string]map[string]struct{}
	byDimension map[int]map[string]struct{}
	nextSeq     uint64
}

// NewStore creates an empty in-memory vector index.
func NewStore() *Store {
	return &Store{
		entries:     make(map[string]*entry),
		bySource:    make(map[string]map[string]struct{}),
		byDimension: make(map[int]map[string]struct{}),
	}
}

// Upsert inserts one entry per chunk/vector pair, recorded under the given
// embedding model and provider. The chunk and vector counts must match.
// Re-adding an existing chunk ID overwrites that entry in place; the
// normal path is append-only per document.
func (s *Store) Upsert(chunks []domain.Chunk, vectors [][]float64, model, provider string) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors", domain.ErrDimensionMismatch, len(chunks), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for i, ch := range chunks {
		if old, ok := s.entries[ch.ID]; ok {
			s.unindex(old)
		}
		s.nextSeq++
		e := &entry{
			chunk:      ch,
			vector:     vectors[i],
			dimensions: len(vectors[i]),
			model:      model,
			provider:   provider,
			insertedAt: now,
			seq:        s.nextSeq,
		}
		s.entries[ch.ID] = e
		s.index(e)
	}
	return nil
}

func (s *Store) index(e *entry) {
	src, ok := s.bySource[e.chunk.SourceID]
	if !ok {
		src = make(map[string]struct{})
		s.bySource[e.chunk.SourceID] = src
	}
	src[e.chunk.ID] = struct{}{}

	dim, ok := s.byDimension[e.dimensions]
	if !ok {
		dim = make(map[string]struct{})
		s.byDimension[e.dimensions] = dim
	}
	dim[e.chunk.ID] = struct{}{}
}

// unindex removes the entry from both secondary indices, dropping any key
// whose set becomes empty so no index key points at an empty set.
func (s *Store) unindex(e *entry) {
	if set, ok := s.bySource[e.chunk.SourceID]; ok {
		delete(set, e.chunk.ID)
		if len(set) == 0 {
			delete(s.bySource, e.chunk.SourceID)
		}
	}
	if set, ok := s.byDimension[e.dimensions]; ok {
		delete(set, e.chunk.ID)
		if len(set) == 0 {
			delete(s.byDimension, e.dimensions)
		}
	}
}

// RemoveBySource removes every entry belonging to the source and reports
// how many were removed. An unknown source is a no-op, not an error.
func (s *Store) RemoveBySource(sourceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, ok := s.bySource[sourceID]
	if !ok {
		return 0
	}
	removed := 0
	for id := range ids {
		e, ok := s.entries[id]
		if !ok {
			continue
		}
		s.unindex(e)
		delete(s.entries, id)
		removed++
	}
	return removed
}

// Search returns at most topK entries whose stored dimensionality equals
// the query vector's length, filtered by source when a filter is given and
// by the minimum score, ordered by score descending with insertion order
// breaking ties. Entries of mismatched dimensionality are silently
// excluded: embeddings from different models are never compared.
func (s *Store) Search(query []float64, topK int, minScore float64, sourceFilter []string) []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidates, ok := s.byDimension[len(query)]
	if !ok || topK <= 0 {
		return nil
	}
	var allowed map[string]struct{}
	if len(sourceFilter) > 0 {
		allowed = make(map[string]struct{}, len(sourceFilter))
		for _, src := range sourceFilter {
			allowed[src] = struct{}{}
		}
	}

	type scored struct {
		e     *entry
		score float64
	}
	matches := make([]scored, 0, len(candidates))
	for id := range candidates {
		e := s.entries[id]
		if allowed != nil {
			if _, ok := allowed[e.chunk.SourceID]; !ok {
				continue
			}
		}
		score := cosine(query, e.vector)
		if score >= minScore {
			matches = append(matches, scored{e, score})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].e.seq < matches[j].e.seq
	})
	if topK < len(matches) {
		matches = matches[:topK]
	}

	results := make([]domain.SearchResult, len(matches))
	for i, m := range matches {
		results[i] = domain.SearchResult{
			Chunk:      m.e.chunk,
			Score:      m.score,
			Model:      m.e.model,
			Provider:   m.e.provider,
			InsertedAt: m.e.insertedAt,
		}
	}
	return results
}

// Stats aggregates index contents in a single pass without mutating state.
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := domain.Stats{
		TotalEntries:   len(s.entries),
		TotalSources:   len(s.bySource),
		ProviderCounts: make(map[string]int),
		ModelCounts:    make(map[string]int),
	}
	if len(s.entries) == 0 {
		return st
	}
	dims := 0
	for _, e := range s.entries {
		dims += e.dimensions
		st.ProviderCounts[e.provider]++
		st.ModelCounts[e.model]++
	}
	st.AverageDimensions = float64(dims) / float64(len(s.entries))
	return st
}

// Clear discards all index state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
	s.bySource = make(map[string]map[string]struct{})
	s.byDimension = make(map[int]map[string]struct{})
	s.nextSeq = 0
}
