package domain

import "errors"

// Domain errors represent failures of the retrieval core itself, distinct
// from infrastructure errors returned by external services.
var (
	// ErrInvalidParameter indicates malformed chunking parameters
	// (non-positive size, overlap >= size). Fatal to the call, never retried.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDimensionMismatch indicates a chunk/embedding count mismatch on
	// insert, or incompatible vector lengths passed to a similarity
	// computation directly.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmbeddingFailure indicates the embedder returned no usable vector.
	// It is propagated; the pipeline never substitutes an empty vector.
	ErrEmbeddingFailure = errors.New("no usable embedding returned")

	// ErrEmbedderUnavailable indicates the external embedding service
	// errored or timed out. Retry policy belongs to the caller.
	ErrEmbedderUnavailable = errors.New("embedder unavailable")
)
