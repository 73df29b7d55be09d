package mocks

import (
	"context"
	"errors"

	"github.com/libris-labs/libris-core/internal/core/domain"
)

// MockCompletionService is a scripted CompletionService for testing.
// Replies are consumed in order; each call also records the turns and
// tool schema it received so tests can assert on the conversation shape.
type MockCompletionService struct {
	replies []*domain.AssistantMessage
	failErr error

	// Calls records every invocation in order
	Calls []CompletionCall
}

// CompletionCall captures the arguments of one Complete invocation
type CompletionCall struct {
	Turns []domain.ConversationTurn
	Tools []domain.ToolDefinition
}

// NewMockCompletionService creates a new MockCompletionService
func NewMockCompletionService() *MockCompletionService {
	return &MockCompletionService{}
}

// QueueReply appends a scripted assistant message
func (m *MockCompletionService) QueueReply(msg *domain.AssistantMessage) {
	m.replies = append(m.replies, msg)
}

// QueueText appends a scripted plain-text assistant message
func (m *MockCompletionService) QueueText(content string) {
	m.QueueReply(&domain.AssistantMessage{Content: content})
}

// FailWith makes every subsequent call return err
func (m *MockCompletionService) FailWith(err error) {
	m.failErr = err
}

func (m *MockCompletionService) Complete(ctx context.Context, turns []domain.ConversationTurn, tools []domain.ToolDefinition) (*domain.AssistantMessage, error) {
	m.Calls = append(m.Calls, CompletionCall{Turns: turns, Tools: tools})

	if m.failErr != nil {
		return nil, m.failErr
	}
	if len(m.replies) == 0 {
		return nil, errors.New("mock completion: no scripted reply")
	}

	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *MockCompletionService) Model() string {
	return "mock-completion-model"
}

func (m *MockCompletionService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockCompletionService) Close() error {
	return nil
}
