package mocks

import (
	"context"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// MockEmbeddingCache is an in-memory EmbeddingCache for testing
type MockEmbeddingCache struct {
	store map[string][]float32

	// Hits and Misses count lookups, for cache-path assertions
	Hits   int
	Misses int
}

// NewMockEmbeddingCache creates a new MockEmbeddingCache
func NewMockEmbeddingCache() *MockEmbeddingCache {
	return &MockEmbeddingCache{store: make(map[string][]float32)}
}

func (m *MockEmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, error) {
	if embedding, ok := m.store[model+"|"+text]; ok {
		m.Hits++
		return embedding, nil
	}
	m.Misses++
	return nil, domain.ErrNotFound
}

func (m *MockEmbeddingCache) Set(ctx context.Context, model, text string, embedding []float32) error {
	m.store[model+"|"+text] = embedding
	return nil
}

func (m *MockEmbeddingCache) Close() error {
	return nil
}
