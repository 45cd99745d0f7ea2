package domain

import "time"

// SourceType tags the provenance of a document. It is metadata only and
// never participates in similarity math.
type SourceType string

const (
	SourceText     SourceType = "text"
	SourceMarkdown SourceType = "markdown"
	SourcePDF      SourceType = "pdf"
	SourceURL      SourceType = "url"
)

// Document is a single normalized source text supplied by a loader.
type Document struct {
	SourceID   string
	SourceType SourceType
	Title      string
	Content    string
}

// Chunk is an immutable, position-tagged window of a source document and
// the unit of retrieval. StartChar/EndChar are half-open rune offsets into
// the normalized source text.
type Chunk struct {
	ID         string
	Text       string
	SourceID   string
	SourceType SourceType
	ChunkIndex int
	StartChar  int
	EndChar    int
}

// Embedding is one embedder output for one input text.
type Embedding struct {
	Vector     []float64
	Dimensions int
	Model      string
	Provider   string
}

// SearchResult is a matching chunk with its similarity score and the
// embedding metadata recorded at insert time.
type SearchResult struct {
	Chunk      Chunk
	Score      float64
	Model      string
	Provider   string
	InsertedAt time.Time
}

// Stats is a read-only aggregate over the index contents.
type Stats struct {
	TotalEntries      int
	TotalSources      int
	AverageDimensions float64
	ProviderCounts    map[string]int
	ModelCounts       map[string]int
}
