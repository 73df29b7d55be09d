package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

func newTestRegistry() *ToolRegistry {
	return NewToolRegistry([]domain.BookRecord{
		{Title: "1984", Summary: "O distopie despre supraveghere totală."},
		{Title: "The Hobbit", Summary: "O aventură despre curaj și prietenie."},
		{Title: "Dune", Summary: "Politică și profeție pe o planetă deșertică."},
	})
}

func summaryCall(t *testing.T, title string) domain.ToolCall {
	t.Helper()
	args, err := json.Marshal(domain.GetSummaryArgs{Title: title})
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	return domain.ToolCall{
		ID:        "call_1",
		Name:      string(domain.ToolKindGetSummaryByTitle),
		Arguments: args,
	}
}

func TestToolRegistry_Definitions(t *testing.T) {
	defs := newTestRegistry().Definitions()

	if len(defs) != 1 {
		t.Fatalf("expected 1 tool definition, got %d", len(defs))
	}
	if defs[0].Name != domain.ToolKindGetSummaryByTitle {
		t.Errorf("expected %s, got %s", domain.ToolKindGetSummaryByTitle, defs[0].Name)
	}
}

func TestToolRegistry_Resolve_ExactMatch(t *testing.T) {
	got := newTestRegistry().Resolve(summaryCall(t, "1984"))

	if got != "O distopie despre supraveghere totală." {
		t.Errorf("unexpected summary: %q", got)
	}
}

func TestToolRegistry_Resolve_CaseInsensitive(t *testing.T) {
	got := newTestRegistry().Resolve(summaryCall(t, "the hobbit"))

	if got != "O aventură despre curaj și prietenie." {
		t.Errorf("expected case-insensitive match, got %q", got)
	}
}

func TestToolRegistry_Resolve_NotFound(t *testing.T) {
	got := newTestRegistry().Resolve(summaryCall(t, "Moby Dick"))

	if !strings.Contains(got, "Moby Dick") {
		t.Errorf("expected requested title in not-found message, got %q", got)
	}
	for _, title := range []string{"1984", "The Hobbit", "Dune"} {
		if !strings.Contains(got, title) {
			t.Errorf("expected %q listed in not-found message, got %q", title, got)
		}
	}
}

func TestToolRegistry_Resolve_UnknownTool(t *testing.T) {
	got := newTestRegistry().Resolve(domain.ToolCall{
		ID:        "call_1",
		Name:      "delete_catalog",
		Arguments: json.RawMessage(`{}`),
	})

	if !strings.Contains(got, "necunoscută") {
		t.Errorf("expected unknown-capability message, got %q", got)
	}
}

func TestToolRegistry_Resolve_MalformedArguments(t *testing.T) {
	got := newTestRegistry().Resolve(domain.ToolCall{
		ID:        "call_1",
		Name:      string(domain.ToolKindGetSummaryByTitle),
		Arguments: json.RawMessage(`{"title":`),
	})

	if !strings.Contains(got, "Eroare internă") {
		t.Errorf("expected internal-error message, got %q", got)
	}
}

func TestToolRegistry_EmptyCatalog(t *testing.T) {
	registry := NewToolRegistry(nil)

	got := registry.Resolve(summaryCall(t, "1984"))
	if !strings.Contains(got, "nu a fost găsită") {
		t.Errorf("expected not-found message, got %q", got)
	}
}
