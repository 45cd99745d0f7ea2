package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

var corpus = []string{
	"cats chase mice around the garden",
	"dogs chase cats around the yard",
	"stock markets fell sharply yesterday",
}

func prepared(t *testing.T) *Embedder {
	t.Helper()
	e := New()
	require.NoError(t, e.Prepare(corpus))
	return e
}

func TestPrepare_EmptyCorpus(t *testing.T) {
	e := New()
	assert.Error(t, e.Prepare(nil))
}

func TestEmbed_BeforePrepare(t *testing.T) {
	e := New()
	_, err := e.Embed(context.Background(), []string{"anything"})
	assert.ErrorIs(t, err, domain.ErrEmbedderUnavailable)
}

func TestEmbed_ShapeAndMetadata(t *testing.T) {
	e := prepared(t)
	results, err := e.Embed(context.Background(), []string{"cats chase mice", "stock markets"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Equal(t, "tfidf", r.Provider)
		assert.Equal(t, ModelName, r.Model)
		assert.Equal(t, r.Dimensions, len(r.Vector))
	}
	assert.Equal(t, results[0].Dimensions, results[1].Dimensions)
}

func TestEmbed_VectorsAreUnitNorm(t *testing.T) {
	e := prepared(t)
	results, err := e.Embed(context.Background(), []string{"cats chase mice around garden"})
	require.NoError(t, err)

	norm := 0.0
	for _, v := range results[0].Vector {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbed_Deterministic(t *testing.T) {
	e := prepared(t)
	first, err := e.Embed(context.Background(), []string{"dogs chase cats"})
	require.NoError(t, err)
	second, err := e.Embed(context.Background(), []string{"dogs chase cats"})
	require.NoError(t, err)
	assert.Equal(t, first[0].Vector, second[0].Vector)
}

func TestEmbed_OutOfVocabularyIsZeroVector(t *testing.T) {
	e := prepared(t)
	results, err := e.Embed(context.Background(), []string{"zebra quantum flute"})
	require.NoError(t, err)

	for _, v := range results[0].Vector {
		assert.Zero(t, v)
	}
}

func TestEmbed_RelatedTextsScoreCloser(t *testing.T) {
	e := prepared(t)
	results, err := e.Embed(context.Background(), []string{
		"cats chase mice",
		"dogs chase cats",
		"stock markets fell",
	})
	require.NoError(t, err)

	dot := func(a, b []float64) float64 {
		sum := 0.0
		for i := range a {
			sum += a[i] * b[i]
		}
		return sum
	}
	animals := dot(results[0].Vector, results[1].Vector)
	finance := dot(results[0].Vector, results[2].Vector)
	assert.Greater(t, animals, finance)
}
