package domain

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// EmbeddingSettings selects and configures the embedding provider.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider AIProvider

	// Model is the embedding model identifier.
	Model string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Dimensions overrides the model's default vector size.
	Dimensions int
}

// IsConfigured returns true if enough is set to build a service.
func (s EmbeddingSettings) IsConfigured() bool {
	return s.Provider.IsValid()
}

// LLMSettings selects and configures the language model provider.
type LLMSettings struct {
	// Provider is the LLM backend.
	Provider AIProvider

	// Model is the model identifier.
	Model string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Temperature controls generation randomness.
	Temperature float64

	// MaxTokens bounds each completion.
	MaxTokens int
}

// IsConfigured returns true if enough is set to build a service.
func (s LLMSettings) IsConfigured() bool {
	return s.Provider.IsValid()
}
