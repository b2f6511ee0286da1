package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.Comparison.ExactMatchThreshold)
	assert.Equal(t, 0.70, cfg.Comparison.SimilarMatchThreshold)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.LLM.EmbeddingModel)
	assert.Equal(t, "html", cfg.Report.DefaultFormat)
	assert.True(t, cfg.Report.IncludeRecommendations)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  provider: ollama
  model: llama3
  temperature: 0.1
  embedding_model: nomic-embed-text
comparison:
  exact_match_threshold: 0.9
  similar_match_threshold: 0.6
report:
  default_format: markdown
output:
  directory: /tmp/reports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 0.9, cfg.Comparison.ExactMatchThreshold)
	assert.Equal(t, 0.6, cfg.Comparison.SimilarMatchThreshold)
	assert.Equal(t, "markdown", cfg.Report.DefaultFormat)
	assert.Equal(t, "/tmp/reports", cfg.Output.Directory)
	// Unset keys keep their defaults.
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateThresholdOrdering(t *testing.T) {
	cfg := Default()
	cfg.Comparison.ExactMatchThreshold = 0.5
	cfg.Comparison.SimilarMatchThreshold = 0.8

	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidThresholds)
}

func TestValidateUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Report.DefaultFormat = "pdf"

	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidInput)
}

func TestValidateUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "bedrock"

	assert.ErrorIs(t, cfg.Validate(), domain.ErrInvalidInput)
}

func TestSettingsMapping(t *testing.T) {
	cfg := Default()

	embed := cfg.EmbeddingSettings()
	assert.Equal(t, domain.AIProviderOpenAI, embed.Provider)
	assert.Equal(t, "text-embedding-3-small", embed.Model)

	llm := cfg.LLMSettings()
	assert.Equal(t, domain.AIProviderOpenAI, llm.Provider)
	assert.Equal(t, "gpt-4o-mini", llm.Model)
	assert.Equal(t, 0.3, llm.Temperature)
	assert.Equal(t, 2000, llm.MaxTokens)
}
