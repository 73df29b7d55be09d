package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
	"github.com/libris-labs/libris-core/internal/core/ports/driving"
)

// Ensure Catalog implements LibraryService
var _ driving.LibraryService = (*Catalog)(nil)

// Catalog is the catalog store: it loads the flat-file catalog, seeds
// the vector index once, and answers top-k semantic queries. Population
// is a startup-only mutation; after that the index is read-only and
// safe for concurrent queries.
type Catalog struct {
	index      driven.VectorIndex
	embeddings driven.EmbeddingService
	cache      driven.EmbeddingCache // may be nil
	logger     *slog.Logger

	records []domain.BookRecord
}

// NewCatalog creates a Catalog over the given index and embedding
// provider. cache may be nil to disable query-embedding memoisation.
func NewCatalog(index driven.VectorIndex, embeddings driven.EmbeddingService, cache driven.EmbeddingCache, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		index:      index,
		embeddings: embeddings,
		cache:      cache,
		logger:     logger,
	}
}

// Load parses the catalog source file into records, preserving file
// order. A file with no marker sections yields zero records without
// error; a missing or unreadable file is fatal to startup.
func (c *Catalog) Load(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCatalogNotFound, path, err)
	}

	records, err := domain.ParseCatalog(string(content))
	if err != nil {
		return err
	}

	c.records = records
	c.logger.Info("catalog loaded", "path", path, "books", len(records))
	return nil
}

// Records returns the loaded catalog records in file order.
func (c *Catalog) Records() []domain.BookRecord {
	return c.records
}

// Populate seeds the index from the loaded records. Idempotent: a
// non-empty index is never re-populated. Embeddings are computed in one
// batched provider call and written in one batch.
func (c *Catalog) Populate(ctx context.Context) error {
	count, err := c.index.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: count: %v", domain.ErrIndexUnavailable, err)
	}
	if count > 0 {
		c.logger.Info("index already populated, skipping", "entries", count)
		return nil
	}
	if len(c.records) == 0 {
		c.logger.Warn("catalog is empty, nothing to index")
		return nil
	}

	texts := make([]string, len(c.records))
	for i, r := range c.records {
		texts[i] = r.FullText()
	}

	embeddings, err := c.embeddings.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed catalog: %v", domain.ErrIndexUnavailable, err)
	}
	if len(embeddings) != len(c.records) {
		return fmt.Errorf("%w: expected %d embeddings, got %d", domain.ErrIndexUnavailable, len(c.records), len(embeddings))
	}

	entries := make([]domain.IndexEntry, len(c.records))
	for i, r := range c.records {
		entries[i] = domain.IndexEntry{
			ID:        domain.IndexEntryID(i),
			Title:     r.Title,
			Summary:   r.Summary,
			Embedding: embeddings[i],
		}
	}

	if err := c.index.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("%w: upsert: %v", domain.ErrIndexUnavailable, err)
	}

	c.logger.Info("index populated", "entries", len(entries))
	return nil
}

// Search returns the k nearest catalog entries to the query, ordered by
// ascending distance. k <= 0 returns an empty result.
func (c *Catalog) Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error) {
	if k <= 0 {
		return []domain.SearchHit{}, nil
	}

	embedding, err := c.embedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrIndexUnavailable, err)
	}

	hits, err := c.index.Query(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", domain.ErrIndexUnavailable, err)
	}
	return hits, nil
}

// ListBooks returns every indexed book in catalog order.
func (c *Catalog) ListBooks(ctx context.Context) ([]domain.IndexEntry, error) {
	entries, err := c.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %v", domain.ErrIndexUnavailable, err)
	}
	return entries, nil
}

// embedQuery consults the cache before calling the provider. Cache
// failures are logged and ignored; they never fail the request.
func (c *Catalog) embedQuery(ctx context.Context, query string) ([]float32, error) {
	model := c.embeddings.Model()

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, model, query)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("embedding cache lookup failed", "error", err)
		}
	}

	embedding, err := c.embeddings.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, model, query, embedding); err != nil {
			c.logger.Warn("embedding cache store failed", "error", err)
		}
	}
	return embedding, nil
}
