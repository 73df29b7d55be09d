package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

const embeddingPrefix = "embedding:"

// defaultTTL bounds memory use; a stale entry is harmless because the
// mapping from text to embedding never changes for a given model.
const defaultTTL = 24 * time.Hour

// EmbeddingCache implements driven.EmbeddingCache using Redis.
// Keys are hashed so arbitrary query text never leaks into key space.
type EmbeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEmbeddingCache creates a new Redis-backed EmbeddingCache
func NewEmbeddingCache(client *redis.Client) *EmbeddingCache {
	return &EmbeddingCache{client: client, ttl: defaultTTL}
}

// Get retrieves a cached embedding. A miss returns domain.ErrNotFound.
func (c *EmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, error) {
	data, err := c.client.Get(ctx, cacheKey(model, text)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}

	var embedding []float32
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedding: %w", err)
	}
	return embedding, nil
}

// Set stores an embedding with the cache TTL
func (c *EmbeddingCache) Set(ctx context.Context, model, text string, embedding []float32) error {
	data, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(model, text), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set embedding: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *EmbeddingCache) Close() error {
	return c.client.Close()
}

// cacheKey derives the Redis key for a model and text pair
func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "|" + text))
	return embeddingPrefix + model + ":" + hex.EncodeToString(sum[:])
}
