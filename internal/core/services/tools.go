package services

import (
	"fmt"
	"strings"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// ToolRegistry resolves tool calls issued by the completion provider.
// Every outcome is a string payload fed back into the conversation:
// lookups never fail hard, because the model can self-correct on the
// next turn when told what titles exist.
type ToolRegistry struct {
	titles    []string          // catalog order
	summaries map[string]string // exact title -> summary
}

// NewToolRegistry builds a registry over the loaded catalog records.
func NewToolRegistry(records []domain.BookRecord) *ToolRegistry {
	r := &ToolRegistry{
		titles:    make([]string, 0, len(records)),
		summaries: make(map[string]string, len(records)),
	}
	for _, record := range records {
		r.titles = append(r.titles, record.Title)
		r.summaries[record.Title] = record.Summary
	}
	return r
}

// Definitions returns the tool schemas advertised to the provider.
func (r *ToolRegistry) Definitions() []domain.ToolDefinition {
	return []domain.ToolDefinition{domain.GetSummaryToolDefinition()}
}

// Resolve executes one tool call. The switch over ToolKind is
// exhaustive for the declared schema; a call outside it fails closed
// with an internal-error string rather than crashing the orchestrator.
func (r *ToolRegistry) Resolve(call domain.ToolCall) string {
	switch domain.ToolKind(call.Name) {
	case domain.ToolKindGetSummaryByTitle:
		args, err := domain.ParseGetSummaryArgs(call.Arguments)
		if err != nil {
			return "Eroare internă: argumentele primite pentru căutarea rezumatului nu au putut fi interpretate."
		}
		return r.summaryByTitle(args.Title)
	default:
		return "Eroare internă: capabilitate necunoscută."
	}
}

// summaryByTitle looks up a summary: exact match first, then a
// case-insensitive scan, then a not-found message enumerating every
// known title so the model can retry with a valid one.
func (r *ToolRegistry) summaryByTitle(title string) string {
	if summary, ok := r.summaries[title]; ok {
		return summary
	}

	for _, known := range r.titles {
		if strings.EqualFold(known, title) {
			return r.summaries[known]
		}
	}

	return fmt.Sprintf(
		"Cartea '%s' nu a fost găsită în baza de date. Cărțile disponibile sunt: %s",
		title, strings.Join(r.titles, ", "),
	)
}
