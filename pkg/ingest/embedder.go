package ingest

import "context"

// Embedder produces a fixed-dimension embedding for a FEN. Implementations
// must support concurrent Embed calls: the orchestrator treats it as a
// thread-safe pure service with no ordering requirement across FENs.
type Embedder interface {
	// Embed returns the embedding vector and the embedding model/version
	// string to record alongside it.
	Embed(ctx context.Context, fenText string) (vector []float32, version string, err error)
}
