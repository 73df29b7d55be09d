package ai

import (
	"fmt"

	"github.com/libris-labs/libris-core/internal/core/domain"
	"github.com/libris-labs/libris-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from settings
func (f *Factory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.AIProviderOllama:
		return NewOllamaEmbedding(settings.BaseURL, settings.Model)
	case domain.AIProviderVoyage:
		return NewVoyageEmbedding(settings.APIKey, settings.Model)
	case domain.AIProviderCohere:
		return NewCohereEmbedding(settings.APIKey, settings.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// CreateCompletionService creates a chat completion service from settings
func (f *Factory) CreateCompletionService(settings *domain.CompletionSettings) (driven.CompletionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIChat(settings.APIKey, settings.Model, settings.BaseURL)
	case domain.AIProviderOllama:
		return NewOllamaChat(settings.BaseURL, settings.Model)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

// Placeholder constructors for providers without adapters yet

func NewVoyageEmbedding(apiKey, model string) (driven.EmbeddingService, error) {
	// TODO: Implement Voyage embedding adapter
	return nil, fmt.Errorf("Voyage embedding adapter not yet implemented")
}

func NewCohereEmbedding(apiKey, model string) (driven.EmbeddingService, error) {
	// TODO: Implement Cohere embedding adapter
	return nil, fmt.Errorf("Cohere embedding adapter not yet implemented")
}

func NewOllamaChat(baseURL, model string) (driven.CompletionService, error) {
	// TODO: Implement Ollama chat adapter
	return nil, fmt.Errorf("Ollama chat adapter not yet implemented")
}
