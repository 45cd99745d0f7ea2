// Package chunker splits document text into overlapping,
// sentence-boundary-aware windows.
package chunker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"docsearch/internal/domain"
)

// DefaultChunkSize is the default chunk length in characters.
const DefaultChunkSize = 1200

// DefaultOverlap is the default overlap between consecutive chunks.
const DefaultOverlap = 200

// DefaultMinChunkSize is the default minimum length of an internal chunk.
const DefaultMinChunkSize = 100

// Chunker produces ordered chunks from normalized document text.
type Chunker struct {
	chunkSize    int
	overlap      int
	minChunkSize int
}

// New validates the chunking parameters and returns a configured Chunker.
// A violated precondition fails with domain.ErrInvalidParameter before any
// chunking work can begin.
func New(chunkSize, overlap, minChunkSize int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidParameter, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must be in [0, %d), got %d", domain.ErrInvalidParameter, chunkSize, overlap)
	}
	if minChunkSize <= 0 {
		return nil, fmt.Errorf("%w: min chunk size must be positive, got %d", domain.ErrInvalidParameter, minChunkSize)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap, minChunkSize: minChunkSize}, nil
}

var (
	controlRe    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F\x{FEFF}]`)
	horizontalRe = regexp.MustCompile(`[^\S\n]+`)
	edgeSpaceRe  = regexp.MustCompile(` ?\n ?`)
	paragraphRe  = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans raw document text ahead of chunking: control characters
// and byte-order marks are stripped, line endings become a single newline,
// runs of horizontal whitespace collapse to one space, runs of three or
// more newlines collapse to a paragraph break, and the whole text is
// trimmed. The transformation is not reversible; chunk offsets refer to
// the normalized text.
func Normalize(text string) string {
	text = controlRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalRe.ReplaceAllString(text, " ")
	text = edgeSpaceRe.ReplaceAllString(text, "\n")
	text = paragraphRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Chunk splits the document into ordered chunks. Empty or whitespace-only
// content yields no chunks. A document no longer than the chunk size is
// emitted as a single chunk even when it is below the minimum size; the
// minimum only prunes internal chunks produced by the windowing loop.
func (c *Chunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	text := []rune(Normalize(document.Content))
	n := len(text)
	if n == 0 {
		return nil, nil
	}
	if n <= c.chunkSize {
		return []domain.Chunk{c.newChunk(document, string(text), 0, 0, n)}, nil
	}

	breakWindow := c.chunkSize / 4
	if breakWindow > 100 {
		breakWindow = 100
	}

	var chunks []domain.Chunk
	start := 0
	index := 0
	for {
		end := start + c.chunkSize
		if end >= n {
			end = n
		} else if pos := c.findBoundary(text, start, end, breakWindow); pos > 0 {
			end = pos
		}
		piece := strings.TrimSpace(string(text[start:end]))
		if len([]rune(piece)) >= c.minChunkSize || end == n {
			chunks = append(chunks, c.newChunk(document, piece, index, start, end))
			index++
		}
		if end == n {
			break
		}
		// Guarantees forward progress even when the overlap swallows the
		// whole produced chunk.
		next := end - c.overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks, nil
}

// findBoundary scans the window around the candidate end from its right
// edge leftward for the latest sentence terminator immediately followed by
// whitespace or end of text, and returns the offset just past it. The
// whitespace requirement rejects abbreviation periods with no following
// space; abbreviations like "Dr. Smith" are still misclassified and that
// behaviour is kept. Returns 0 when no boundary is found.
func (c *Chunker) findBoundary(text []rune, start, candidateEnd, breakWindow int) int {
	lo := candidateEnd - breakWindow
	if m := start + c.minChunkSize; lo < m {
		lo = m
	}
	hi := candidateEnd + breakWindow
	if hi > len(text) {
		hi = len(text)
	}
	for i := hi - 1; i >= lo; i-- {
		r := text[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 == len(text) || unicode.IsSpace(text[i+1]) {
			return i + 1
		}
	}
	return 0
}

func (c *Chunker) newChunk(doc domain.Document, text string, index, start, end int) domain.Chunk {
	return domain.Chunk{
		ID:         uuid.New().String(),
		Text:       text,
		SourceID:   doc.SourceID,
		SourceType: doc.SourceType,
		ChunkIndex: index,
		StartChar:  start,
		EndChar:    end,
	}
}
