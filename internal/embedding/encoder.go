package embedding

import (
	"context"
	"math"
)

// Encoder produces sentence embeddings. The process owns one encoder for
// its whole lifetime; it must be safe for concurrent read-only use. Tests
// substitute a deterministic stub.
type Encoder interface {
	// Encode embeds a single text.
	Encode(ctx context.Context, text string) ([]float32, error)

	// EncodeBatch embeds multiple texts in one round trip. The result is
	// aligned with the input order.
	EncodeBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Cosine returns the cosine similarity of two vectors, 0 when either is
// empty or zero-length in magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
