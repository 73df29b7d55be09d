package driven

import "context"

// EmbeddingCache memoises computed embeddings keyed by model and text.
// Optional: a nil cache disables memoisation. Lookup misses return
// domain.ErrNotFound; cache failures must never fail a request.
type EmbeddingCache interface {
	// Get returns the cached embedding for the model/text pair
	Get(ctx context.Context, model, text string) ([]float32, error)

	// Set stores an embedding for the model/text pair
	Set(ctx context.Context, model, text string, embedding []float32) error

	// Close releases the cache connection
	Close() error
}
