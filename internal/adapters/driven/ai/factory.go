// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	ollamaembed "github.com/reqlens/reqlens-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/reqlens/reqlens-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/reqlens/reqlens-cli/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/reqlens/reqlens-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/reqlens/reqlens-cli/internal/adapters/driven/llm/openai"
	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// API key environment variables per provider. Keys are loaded from the
// environment (optionally populated from a .env file at startup).
var apiKeyEnvVars = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
}

// APIKeyFor returns the configured API key for a provider, or an error
// naming the environment variable to set.
func APIKeyFor(provider domain.AIProvider) (string, error) {
	if !provider.RequiresAPIKey() {
		return "", nil
	}
	envVar := apiKeyEnvVars[provider]
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("API key not found for %s: set %s in the environment or a .env file",
			provider, envVar)
	}
	return key, nil
}

// CreateEmbeddingService builds an embedding service from settings.
// Anthropic exposes no embeddings API, so it is rejected here even
// though it is a valid LLM provider.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		key, err := APIKeyFor(settings.Provider)
		if err != nil {
			return nil, err
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     key,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("%w: anthropic provides no embeddings API; configure openai or ollama embeddings",
			domain.ErrEmbeddingUnavailable)

	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrEmbeddingUnavailable, settings.Provider)
	}
}

// CreateLLMService builds an LLM service from settings.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		key, err := APIKeyFor(settings.Provider)
		if err != nil {
			return nil, err
		}
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  key,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		key, err := APIKeyFor(settings.Provider)
		if err != nil {
			return nil, err
		}
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  key,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q",
			domain.ErrLLMUnavailable, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Matching cannot run without embeddings, so a
// failed ping is an error rather than a degradation.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity. Returns (nil, err) on failure; callers treat the LLM as
// optional and degrade to fallback text.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}
