package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven/mocks"
)

type chatFixture struct {
	service    *chatService
	embeddings *mocks.MockEmbeddingService
	completion *mocks.MockCompletionService
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	catalog, _, embeddings := newTestCatalog(t)
	if err := catalog.Populate(context.Background()); err != nil {
		t.Fatalf("failed to populate index: %v", err)
	}
	embeddings.EmbedCalls = 0

	completion := mocks.NewMockCompletionService()
	registry := NewToolRegistry(catalog.Records())
	service := NewChatService(catalog, registry, completion, nil).(*chatService)

	return &chatFixture{service: service, embeddings: embeddings, completion: completion}
}

func TestChatService_Respond_NoToolCall(t *testing.T) {
	f := newChatFixture(t)
	f.completion.QueueText("Îți recomand Dune, o poveste epică despre putere.")

	got, err := f.service.Respond(context.Background(), "Vreau o carte despre politică")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Îți recomand Dune, o poveste epică despre putere." {
		t.Errorf("unexpected answer: %q", got)
	}
	if len(f.completion.Calls) != 1 {
		t.Fatalf("expected 1 completion call, got %d", len(f.completion.Calls))
	}

	call := f.completion.Calls[0]
	if len(call.Tools) != 1 {
		t.Errorf("expected tool schema on first completion call, got %d tools", len(call.Tools))
	}
	if len(call.Turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(call.Turns))
	}
	if call.Turns[0].Role != domain.RoleSystem || call.Turns[2].Role != domain.RoleUser {
		t.Error("expected system persona first and user message last")
	}
	if !strings.Contains(call.Turns[1].Content, "Cărți relevante găsite") {
		t.Errorf("expected retrieval context turn, got %q", call.Turns[1].Content)
	}
}

func TestChatService_Respond_FilterRejection(t *testing.T) {
	f := newChatFixture(t)

	got, err := f.service.Respond(context.Background(), "ce carte idiot mai e și asta")
	if err != nil {
		t.Fatalf("expected refusal as a normal answer, got error: %v", err)
	}
	if got != domain.RefusalMessage {
		t.Errorf("expected refusal message, got %q", got)
	}

	// A rejected input never reaches retrieval or the provider.
	if f.embeddings.EmbedCalls != 0 {
		t.Errorf("expected no embedding calls, got %d", f.embeddings.EmbedCalls)
	}
	if len(f.completion.Calls) != 0 {
		t.Errorf("expected no completion calls, got %d", len(f.completion.Calls))
	}
}

func TestChatService_Respond_ToolRoundTrip(t *testing.T) {
	f := newChatFixture(t)
	args, _ := json.Marshal(domain.GetSummaryArgs{Title: "1984"})
	f.completion.QueueReply(&domain.AssistantMessage{
		Content: "",
		ToolCalls: []domain.ToolCall{{
			ID:        "call_abc",
			Name:      string(domain.ToolKindGetSummaryByTitle),
			Arguments: args,
		}},
	})
	f.completion.QueueText("Îți recomand 1984: o distopie despre supraveghere.")

	got, err := f.service.Respond(context.Background(), "Ceva despre control social")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Îți recomand 1984: o distopie despre supraveghere." {
		t.Errorf("unexpected answer: %q", got)
	}
	if len(f.completion.Calls) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(f.completion.Calls))
	}

	// The follow-up call carries no tool schema, so the model cannot
	// chain a second round trip.
	if len(f.completion.Calls[1].Tools) != 0 {
		t.Errorf("expected no tools on follow-up call, got %d", len(f.completion.Calls[1].Tools))
	}

	turns := f.completion.Calls[1].Turns
	if len(turns) != 5 {
		t.Fatalf("expected 5 turns on follow-up call, got %d", len(turns))
	}
	assistant := turns[3]
	if assistant.Role != domain.RoleAssistant || len(assistant.ToolCalls) != 1 {
		t.Error("expected assistant turn echoing the tool call")
	}
	result := turns[4]
	if result.Role != domain.RoleTool || result.ToolCallID != "call_abc" {
		t.Errorf("expected tool result turn bound to call_abc, got role=%s id=%s", result.Role, result.ToolCallID)
	}
	if !strings.Contains(result.Content, "supraveghere") {
		t.Errorf("expected resolved summary in tool turn, got %q", result.Content)
	}
}

func TestChatService_Respond_UnknownToolFailsClosed(t *testing.T) {
	f := newChatFixture(t)
	f.completion.QueueReply(&domain.AssistantMessage{
		ToolCalls: []domain.ToolCall{{
			ID:        "call_x",
			Name:      "drop_tables",
			Arguments: json.RawMessage(`{}`),
		}},
	})
	f.completion.QueueText("Îmi pare rău, nu am putut verifica rezumatul.")

	got, err := f.service.Respond(context.Background(), "Recomandă-mi ceva")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "" {
		t.Error("expected a final answer despite the unknown tool")
	}

	turns := f.completion.Calls[1].Turns
	if !strings.Contains(turns[4].Content, "necunoscută") {
		t.Errorf("expected fail-closed tool payload, got %q", turns[4].Content)
	}
}

func TestChatService_Respond_ProviderFailure(t *testing.T) {
	f := newChatFixture(t)
	f.completion.FailWith(errors.New("upstream 500"))

	_, err := f.service.Respond(context.Background(), "Vreau o carte de aventuri")
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestChatService_Respond_SearchFailure(t *testing.T) {
	f := newChatFixture(t)
	f.embeddings.SetFailNext(true)

	_, err := f.service.Respond(context.Background(), "Vreau o carte de aventuri")
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
	if len(f.completion.Calls) != 0 {
		t.Errorf("expected no completion calls after search failure, got %d", len(f.completion.Calls))
	}
}
