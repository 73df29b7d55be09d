package driving

import (
	"context"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// LibraryService exposes read-only catalog access
type LibraryService interface {
	// ListBooks returns every indexed book in catalog order
	ListBooks(ctx context.Context) ([]domain.IndexEntry, error)
}
