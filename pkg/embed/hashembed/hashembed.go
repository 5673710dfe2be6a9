// Package hashembed is a deterministic, dependency-free reference
// Embedder: it hashes the FEN text into a fixed-dimension vector so the
// ingestion pipeline can be exercised end to end without a real embedding
// service. It carries no semantic meaning about the position.
package hashembed

import (
	"context"
	"hash/fnv"
)

const (
	// Dimension matches the fixed-dimension embedding the store expects.
	Dimension = 768

	// Version is recorded alongside every embedding this package produces.
	Version = "hashembed-v1"
)

// Embedder deterministically derives a unit-scale vector from FEN text.
type Embedder struct{}

// New returns a ready-to-use Embedder. It holds no state and is safe for
// concurrent use.
func New() Embedder {
	return Embedder{}
}

func (Embedder) Embed(ctx context.Context, fenText string) ([]float32, string, error) {
	vec := make([]float32, Dimension)

	h := fnv.New64a()
	seed := []byte(fenText)

	for i := range vec {
		h.Reset()
		h.Write(seed)
		h.Write([]byte{byte(i), byte(i >> 8)})
		sum := h.Sum64()

		// Map the 64-bit digest onto [-1, 1].
		vec[i] = float32(sum%2000001)/1000000.0 - 1.0
	}

	return vec, Version, nil
}
