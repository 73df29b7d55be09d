package domain

import (
	"fmt"
	"strings"
)

// CatalogMarker introduces each record in the catalog source file.
// The title follows the marker on the same line; the summary body runs
// until the next marker or end of file.
const CatalogMarker = "## Title: "

// BookRecord is one catalog entry. Created once at load time and
// immutable thereafter; each record maps one-to-one to an index entry.
type BookRecord struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// FullText is the text that gets embedded for this record.
func (b BookRecord) FullText() string {
	return "Title: " + b.Title + "\n" + b.Summary
}

// IndexEntry is a record prepared for the vector index.
type IndexEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// SearchHit is a single semantic search result, ordered by ascending
// distance (closest first).
type SearchHit struct {
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	Distance float64 `json:"distance"`
}

// IndexEntryID returns the deterministic id for the record at the given
// catalog position.
func IndexEntryID(ordinal int) string {
	return fmt.Sprintf("book_%d", ordinal)
}

// ParseCatalog parses the marker-delimited catalog format into records,
// preserving file order. Content with no markers yields an empty slice.
// A section whose title line is present but whose body is empty is
// rejected as malformed.
func ParseCatalog(content string) ([]BookRecord, error) {
	sections := strings.Split(content, CatalogMarker)
	if len(sections) <= 1 {
		return []BookRecord{}, nil
	}

	// Skip everything before the first marker.
	records := make([]BookRecord, 0, len(sections)-1)
	for _, section := range sections[1:] {
		section = strings.TrimSpace(section)
		title, summary, ok := strings.Cut(section, "\n")
		if !ok {
			return nil, fmt.Errorf("%w: section %q has no summary body", ErrCatalogMalformed, truncate(section, 40))
		}
		title = strings.TrimSpace(title)
		summary = strings.TrimSpace(summary)
		if title == "" || summary == "" {
			return nil, fmt.Errorf("%w: section with empty title or summary", ErrCatalogMalformed)
		}
		records = append(records, BookRecord{Title: title, Summary: summary})
	}

	return records, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
