package driven

import (
	"context"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// CompletionService produces assistant messages from a conversation.
// A nil or empty tools slice means the provider must answer in plain
// text; with tools present the provider decides whether to call one.
type CompletionService interface {
	// Complete runs one completion over the given turns. The returned
	// message may carry free text, tool calls, or both.
	Complete(ctx context.Context, turns []domain.ConversationTurn, tools []domain.ToolDefinition) (*domain.AssistantMessage, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the completion service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the completion service
	Close() error
}
