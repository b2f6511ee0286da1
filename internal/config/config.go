// Package config loads the ReqLens configuration from a YAML file.
// Configuration is read once at startup and treated as immutable
// thereafter; components receive the values they need through their
// constructors.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

// DefaultPath is where the config is looked up when --config is not given.
const DefaultPath = "config/config.yaml"

// LLMConfig configures the language model used for gap analysis and
// recommendations, plus the embedding model used for matching.
type LLMConfig struct {
	Provider       string  `yaml:"provider"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	EmbeddingModel string  `yaml:"embedding_model"`
	BaseURL        string  `yaml:"base_url,omitempty"`
}

// ComparisonConfig holds the classification thresholds.
type ComparisonConfig struct {
	ExactMatchThreshold   float64 `yaml:"exact_match_threshold"`
	SimilarMatchThreshold float64 `yaml:"similar_match_threshold"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	DefaultFormat          string `yaml:"default_format"`
	IncludeStatistics      bool   `yaml:"include_statistics"`
	IncludeRecommendations bool   `yaml:"include_recommendations"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// Config is the root configuration structure.
type Config struct {
	LLM        LLMConfig        `yaml:"llm"`
	Comparison ComparisonConfig `yaml:"comparison"`
	Report     ReportConfig     `yaml:"report"`
	Output     OutputConfig     `yaml:"output"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			Temperature:    0.3,
			MaxTokens:      2000,
			EmbeddingModel: "text-embedding-3-small",
		},
		Comparison: ComparisonConfig{
			ExactMatchThreshold:   0.95,
			SimilarMatchThreshold: 0.70,
		},
		Report: ReportConfig{
			DefaultFormat:          "html",
			IncludeStatistics:      true,
			IncludeRecommendations: true,
		},
		Output: OutputConfig{
			Directory: "outputs/comparison_reports",
		},
	}
}

// Load reads the config from path. A missing file falls back to the
// built-in defaults; a malformed or invalid file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks option ranges and the threshold ordering constraint.
func (c *Config) Validate() error {
	exact := c.Comparison.ExactMatchThreshold
	similar := c.Comparison.SimilarMatchThreshold
	if similar < 0 || exact > 1 || similar > exact {
		return fmt.Errorf("%w: similar=%.2f exact=%.2f",
			domain.ErrInvalidThresholds, similar, exact)
	}

	switch c.Report.DefaultFormat {
	case "markdown", "html", "both":
	default:
		return fmt.Errorf("%w: unknown report format %q",
			domain.ErrInvalidInput, c.Report.DefaultFormat)
	}

	if !domain.AIProvider(c.LLM.Provider).IsValid() {
		return fmt.Errorf("%w: unknown provider %q",
			domain.ErrInvalidInput, c.LLM.Provider)
	}
	return nil
}

// EmbeddingSettings maps the config onto the domain embedding settings.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(c.LLM.Provider),
		Model:    c.LLM.EmbeddingModel,
		BaseURL:  c.LLM.BaseURL,
	}
}

// LLMSettings maps the config onto the domain LLM settings.
func (c *Config) LLMSettings() domain.LLMSettings {
	return domain.LLMSettings{
		Provider:    domain.AIProvider(c.LLM.Provider),
		Model:       c.LLM.Model,
		BaseURL:     c.LLM.BaseURL,
		Temperature: c.LLM.Temperature,
		MaxTokens:   c.LLM.MaxTokens,
	}
}
