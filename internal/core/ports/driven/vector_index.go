package driven

import (
	"context"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// VectorIndex stores embedded catalog entries and answers nearest
// neighbour queries. Implementations persist across process restarts;
// a non-empty index is the signal that population already happened.
type VectorIndex interface {
	// Upsert writes all entries in one batch. Entries carry their
	// embedding; the batch is atomic.
	Upsert(ctx context.Context, entries []domain.IndexEntry) error

	// Query returns the k nearest entries to the embedding, ordered by
	// ascending distance. k larger than the index returns everything;
	// k <= 0 returns nothing.
	Query(ctx context.Context, embedding []float32, k int) ([]domain.SearchHit, error)

	// Count reports the number of stored entries
	Count(ctx context.Context) (int, error)

	// List returns all stored entries without embeddings, in insertion order
	List(ctx context.Context) ([]domain.IndexEntry, error)

	// Close releases the underlying storage handle
	Close() error
}
