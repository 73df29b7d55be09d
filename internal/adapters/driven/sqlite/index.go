package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
)

// Ensure Index implements VectorIndex
var _ driven.VectorIndex = (*Index)(nil)

// Index is a SQLite-backed VectorIndex. The catalog is small enough
// that queries load every stored embedding and rank in process; the
// database buys persistence across restarts, not ANN search.
type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id        TEXT PRIMARY KEY,
	ord       INTEGER NOT NULL,
	title     TEXT NOT NULL,
	summary   TEXT NOT NULL,
	embedding BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_books_ord ON books(ord);
`

// NewIndex opens (creating if needed) the index database at path.
// Use ":memory:" for an ephemeral index.
func NewIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise index schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Upsert writes the batch in a single transaction. Either every entry
// lands or none do.
func (i *Index) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books (id, ord, title, summary, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ord = excluded.ord,
			title = excluded.title,
			summary = excluded.summary,
			embedding = excluded.embedding`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for ord, entry := range entries {
		if _, err := stmt.ExecContext(ctx, entry.ID, ord, entry.Title, entry.Summary, encodeEmbedding(entry.Embedding)); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// Query returns the k nearest entries by cosine distance, ascending.
// Ties keep insertion order.
func (i *Index) Query(ctx context.Context, embedding []float32, k int) ([]domain.SearchHit, error) {
	if k <= 0 {
		return []domain.SearchHit{}, nil
	}

	rows, err := i.db.QueryContext(ctx, `SELECT title, summary, embedding FROM books ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	hits := []domain.SearchHit{}
	for rows.Next() {
		var title, summary string
		var blob []byte
		if err := rows.Scan(&title, &summary, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		stored, err := decodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("corrupt embedding for %q: %w", title, err)
		}
		hits = append(hits, domain.SearchHit{
			Title:    title,
			Summary:  summary,
			Distance: cosineDistance(embedding, stored),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].Distance < hits[b].Distance })
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Count returns the number of stored entries
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	if err := i.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// List returns every entry in insertion order, without embeddings
func (i *Index) List(ctx context.Context) ([]domain.IndexEntry, error) {
	rows, err := i.db.QueryContext(ctx, `SELECT id, title, summary FROM books ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.IndexEntry{}
	for rows.Next() {
		var entry domain.IndexEntry
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Summary); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the underlying database
func (i *Index) Close() error {
	return i.db.Close()
}

// encodeEmbedding packs a vector as little-endian float32 bytes
func encodeEmbedding(embedding []float32) []byte {
	buf := make([]byte, 4*len(embedding))
	for i, v := range embedding {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding unpacks little-endian float32 bytes
func decodeEmbedding(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(blob))
	}
	embedding := make([]float32, len(blob)/4)
	for i := range embedding {
		embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return embedding, nil
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
