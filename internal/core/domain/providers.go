package domain

// AIProvider identifies an AI service provider
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
	AIProviderVoyage AIProvider = "voyage"
	AIProviderCohere AIProvider = "cohere"
)

// EmbeddingSettings configures an embedding provider
type EmbeddingSettings struct {
	Provider AIProvider
	APIKey   string
	Model    string
	BaseURL  string
}

// IsConfigured reports whether the settings can produce a usable service.
// Ollama runs locally and needs no key.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s.Provider == "" {
		return false
	}
	if s.Provider == AIProviderOllama {
		return true
	}
	return s.APIKey != ""
}

// CompletionSettings configures a chat completion provider
type CompletionSettings struct {
	Provider AIProvider
	APIKey   string
	Model    string
	BaseURL  string
}

// IsConfigured reports whether the settings can produce a usable service.
func (s *CompletionSettings) IsConfigured() bool {
	if s.Provider == "" {
		return false
	}
	if s.Provider == AIProviderOllama {
		return true
	}
	return s.APIKey != ""
}
