package driven

import "github.com/libris-labs/libris-core/internal/core/domain"

// AIServiceFactory creates AI services from provider settings.
// Unconfigured settings yield a nil service without error.
type AIServiceFactory interface {
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)
	CreateCompletionService(settings *domain.CompletionSettings) (CompletionService, error)
}
