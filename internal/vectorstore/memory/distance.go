package memory

import (
	"fmt"
	"math"

	"docsearch/internal/domain"
)

// Cosine computes the cosine similarity between two vectors. It returns
// domain.ErrDimensionMismatch when the vectors have different lengths.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	return cosine(a, b), nil
}

// cosine assumes equal-length vectors. The result is clamped to [-1, 1] to
// absorb floating-point drift; a zero-magnitude vector scores 0.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	score := dot / (math.Sqrt(na) * math.Sqrt(nb))
	switch {
	case score > 1:
		return 1
	case score < -1:
		return -1
	}
	return score
}
