package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
	"github.com/libris-labs/libris-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// systemPrompt is the librarian persona, in the conversational language
// of the catalog.
const systemPrompt = `Ești un bibliotecar AI inteligent și prietenos care recomandă cărți utilizatorilor în funcție de interesele lor.

Când un utilizator îți cere o recomandare de carte:
1. Analizează cererea și identifică temele, genurile sau preferințele
2. Caută în baza ta de date de cărți folosind informațiile furnizate
3. Recomandă una dintre cărțile găsite
4. Folosește tool-ul get_summary_by_title pentru a obține un rezumat detaliat
5. Prezintă recomandarea într-un mod conversațional și prietenos

Răspunde în română și fii entuziasmant când faci recomandări!`

// defaultTopK is how many catalog hits are folded into the prompt.
const defaultTopK = 3

// chatService orchestrates one request: moderation, retrieval, the
// first completion, at most one tool round trip, and the final answer.
type chatService struct {
	filter     domain.ContentFilter
	catalog    *Catalog
	registry   *ToolRegistry
	completion driven.CompletionService
	logger     *slog.Logger
	topK       int
}

// NewChatService creates a new ChatService.
func NewChatService(
	catalog *Catalog,
	registry *ToolRegistry,
	completion driven.CompletionService,
	logger *slog.Logger,
) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		filter:     domain.NewContentFilter(),
		catalog:    catalog,
		registry:   registry,
		completion: completion,
		logger:     logger,
		topK:       defaultTopK,
	}
}

// Respond processes one user utterance. A filter rejection returns the
// refusal message as a normal answer; every other failure propagates so
// the service boundary decides how to present it.
func (s *chatService) Respond(ctx context.Context, input string) (string, error) {
	if ok, msg := s.filter.Check(input); !ok {
		s.logger.Info("input rejected by content filter")
		return msg, nil
	}

	hits, err := s.catalog.Search(ctx, input, s.topK)
	if err != nil {
		return "", err
	}

	turns := []domain.ConversationTurn{
		domain.SystemTurn(systemPrompt),
		domain.SystemTurn("Context: " + buildContext(hits)),
		domain.UserTurn(input),
	}

	reply, err := s.complete(ctx, turns, s.registry.Definitions())
	if err != nil {
		return "", err
	}

	if len(reply.ToolCalls) == 0 {
		return reply.Content, nil
	}

	// Tool round trip: echo the assistant turn verbatim, resolve each
	// call in order, then ask again without the tool schema. At most one
	// round trip is supported; the model cannot chain further calls.
	turns = append(turns, domain.AssistantTurn(reply))
	for _, call := range reply.ToolCalls {
		s.logger.Info("resolving tool call", "tool", call.Name, "id", call.ID)
		turns = append(turns, domain.ToolResultTurn(call.ID, s.registry.Resolve(call)))
	}

	final, err := s.complete(ctx, turns, nil)
	if err != nil {
		return "", err
	}
	return final.Content, nil
}

func (s *chatService) complete(ctx context.Context, turns []domain.ConversationTurn, tools []domain.ToolDefinition) (*domain.AssistantMessage, error) {
	reply, err := s.completion.Complete(ctx, turns, tools)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	return reply, nil
}

// buildContext renders the retrieved hits as a numbered block for the
// context turn.
func buildContext(hits []domain.SearchHit) string {
	var b strings.Builder
	b.WriteString("Cărți relevante găsite:\n")
	for i, hit := range hits {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, hit.Title, hit.Summary)
	}
	return b.String()
}
