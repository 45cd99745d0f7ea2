package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

func mustChunker(t *testing.T, size, overlap, minSize int) *Chunker {
	t.Helper()
	c, err := New(size, overlap, minSize)
	require.NoError(t, err)
	return c
}

func TestNew_InvalidParameters(t *testing.T) {
	cases := []struct {
		name                        string
		chunkSize, overlap, minSize int
	}{
		{"zero chunk size", 0, 0, 10},
		{"negative chunk size", -5, 0, 10},
		{"negative overlap", 100, -1, 10},
		{"overlap equals chunk size", 100, 100, 10},
		{"overlap exceeds chunk size", 100, 150, 10},
		{"zero min chunk size", 100, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.chunkSize, tc.overlap, tc.minSize)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, domain.ErrInvalidParameter)
		})
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"collapses spaces and tabs", "a  \t b", "a b"},
		{"normalizes crlf", "a\r\nb\rc", "a\nb\nc"},
		{"strips bom and control chars", "\uFEFFa\x00b\x07c", "abc"},
		{"keeps paragraph break", "a\n\nb", "a\n\nb"},
		{"collapses newline runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"trims line edges", "a \n b", "a\nb"},
		{"trims document", "  a b  ", "a b"},
		{"whitespace only", " \t\r\n ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := mustChunker(t, 1200, 200, 100)
	for _, content := range []string{"", "   \n\t  "} {
		chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: content})
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestChunk_ShortDocument(t *testing.T) {
	c := mustChunker(t, 1200, 200, 100)
	text := strings.Repeat("abcde", 10) // 50 chars
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", SourceType: domain.SourceText, Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	ch := chunks[0]
	assert.Equal(t, text, ch.Text)
	assert.Equal(t, 0, ch.ChunkIndex)
	assert.Equal(t, 0, ch.StartChar)
	assert.Equal(t, 50, ch.EndChar)
	assert.Equal(t, "doc", ch.SourceID)
	assert.Equal(t, domain.SourceText, ch.SourceType)
	assert.NotEmpty(t, ch.ID)
}

func TestChunk_ShortDocumentBelowMinSize(t *testing.T) {
	// The minimum size never suppresses the single short-document chunk.
	c := mustChunker(t, 1200, 200, 100)
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: "tiny"})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "tiny", chunks[0].Text)
}

func TestChunk_ExactChunkSizeTakesShortPath(t *testing.T) {
	c := mustChunker(t, 40, 10, 5)
	text := strings.Repeat("a", 40)
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 40, chunks[0].EndChar)
}

func TestChunk_SentenceBoundaries(t *testing.T) {
	c := mustChunker(t, 1200, 200, 100)
	text := strings.TrimSpace(strings.Repeat("A. B. C. ", 280)) // ~2500 chars
	n := len([]rune(Normalize(text)))

	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	assert.Equal(t, 0, chunks[0].StartChar)
	assert.Equal(t, n, chunks[len(chunks)-1].EndChar)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.ChunkIndex)
		assert.Greater(t, ch.EndChar, ch.StartChar)
		if i < len(chunks)-1 {
			// Internal chunks break at a sentence boundary and respect the
			// minimum size.
			assert.True(t, strings.HasSuffix(ch.Text, "."), "chunk %d should end at a sentence boundary, got %q", i, ch.Text[len(ch.Text)-10:])
			assert.GreaterOrEqual(t, len([]rune(ch.Text)), 100)
			next := chunks[i+1]
			assert.GreaterOrEqual(t, next.StartChar, ch.StartChar)
			assert.LessOrEqual(t, next.StartChar, ch.EndChar, "chunks must not leave gaps")
			assert.GreaterOrEqual(t, next.StartChar, ch.EndChar-200, "overlap must not exceed the configured overlap")
		}
	}
}

func TestChunk_NoBoundaryFallsBackToRawEnd(t *testing.T) {
	c := mustChunker(t, 1200, 200, 100)
	text := strings.Repeat("x", 2500)
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	assert.Equal(t, 1200, chunks[0].EndChar)
}

func TestChunk_AbbreviationPeriodRejected(t *testing.T) {
	// A period with no following whitespace is not a boundary, so the only
	// break candidates inside the window are the real sentence ends.
	c := mustChunker(t, 60, 10, 10)
	text := strings.Repeat("See e.g.the spec here now. ", 10)
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
	require.NoError(t, err)
	for i, ch := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(ch.Text, "now."), "chunk %d ends mid-abbreviation: %q", i, ch.Text)
	}
}

func TestChunk_TrailingShortChunkEmitted(t *testing.T) {
	c := mustChunker(t, 1200, 0, 100)
	text := strings.Repeat("x", 1250)
	chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 50, len(chunks[1].Text))
	assert.Equal(t, 1250, chunks[1].EndChar)
}

func TestChunk_Deterministic(t *testing.T) {
	c := mustChunker(t, 300, 50, 40)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 40)
	doc := domain.Document{SourceID: "doc", Content: text}

	first, err := c.Chunk(doc)
	require.NoError(t, err)
	second, err := c.Chunk(doc)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Text, second[i].Text)
		assert.Equal(t, first[i].StartChar, second[i].StartChar)
		assert.Equal(t, first[i].EndChar, second[i].EndChar)
	}
}

func TestChunk_TerminatesForAllParameters(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet. ", 60)
	for _, p := range []struct{ size, overlap, minSize int }{
		{10, 9, 1},
		{50, 49, 5},
		{100, 20, 150}, // min larger than chunk size still terminates
		{1200, 200, 100},
	} {
		c := mustChunker(t, p.size, p.overlap, p.minSize)
		chunks, err := c.Chunk(domain.Document{SourceID: "doc", Content: text})
		require.NoError(t, err)
		for i := 1; i < len(chunks); i++ {
			assert.GreaterOrEqual(t, chunks[i].StartChar, chunks[i-1].StartChar)
			assert.GreaterOrEqual(t, chunks[i].EndChar, chunks[i-1].EndChar)
		}
	}
}
