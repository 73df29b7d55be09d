package mocks

import (
	"context"
	"math"
	"sort"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// MockVectorIndex is an in-memory VectorIndex for testing. Query ranks
// by exact cosine distance over the stored embeddings.
type MockVectorIndex struct {
	entries []domain.IndexEntry

	// UpsertCalls counts batch writes, for idempotence assertions
	UpsertCalls int
}

// NewMockVectorIndex creates a new MockVectorIndex
func NewMockVectorIndex() *MockVectorIndex {
	return &MockVectorIndex{}
}

func (m *MockVectorIndex) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	m.UpsertCalls++
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockVectorIndex) Query(ctx context.Context, embedding []float32, k int) ([]domain.SearchHit, error) {
	if k <= 0 || len(m.entries) == 0 {
		return []domain.SearchHit{}, nil
	}

	hits := make([]domain.SearchHit, 0, len(m.entries))
	for _, e := range m.entries {
		hits = append(hits, domain.SearchHit{
			Title:    e.Title,
			Summary:  e.Summary,
			Distance: cosineDistance(embedding, e.Embedding),
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (m *MockVectorIndex) Count(ctx context.Context) (int, error) {
	return len(m.entries), nil
}

func (m *MockVectorIndex) List(ctx context.Context) ([]domain.IndexEntry, error) {
	out := make([]domain.IndexEntry, len(m.entries))
	for i, e := range m.entries {
		e.Embedding = nil
		out[i] = e
	}
	return out, nil
}

func (m *MockVectorIndex) Close() error {
	return nil
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
