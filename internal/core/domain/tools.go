package domain

import (
	"encoding/json"
	"fmt"
)

// ToolKind is the closed set of capabilities the model may invoke.
// Adding a tool means adding a constant here, its argument type, and a
// case in the registry's switch - a compile-time-checked change, not a
// string comparison at dispatch time.
type ToolKind string

const (
	// ToolKindGetSummaryByTitle fetches a full book summary by exact title.
	ToolKindGetSummaryByTitle ToolKind = "get_summary_by_title"
)

// IsValid returns true if this is a known tool kind.
func (k ToolKind) IsValid() bool {
	switch k {
	case ToolKindGetSummaryByTitle:
		return true
	default:
		return false
	}
}

// GetSummaryArgs are the typed arguments of get_summary_by_title.
type GetSummaryArgs struct {
	Title string `json:"title"`
}

// ToolDefinition is the schema advertised to the completion provider.
type ToolDefinition struct {
	Name        ToolKind        `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// GetSummaryToolDefinition declares the single registered capability.
func GetSummaryToolDefinition() ToolDefinition {
	return ToolDefinition{
		Name:        ToolKindGetSummaryByTitle,
		Description: "Get detailed summary for a specific book by its exact title",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {
					"type": "string",
					"description": "The exact title of the book to get summary for"
				}
			},
			"required": ["title"]
		}`),
	}
}

// ParseGetSummaryArgs decodes the raw arguments of a tool call into the
// typed form.
func ParseGetSummaryArgs(raw json.RawMessage) (GetSummaryArgs, error) {
	var args GetSummaryArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return GetSummaryArgs{}, fmt.Errorf("%w: tool arguments: %v", ErrInvalidInput, err)
	}
	return args, nil
}
