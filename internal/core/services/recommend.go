package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// fallbackRecommendations is returned whenever the LLM is unavailable,
// fails, or produces nothing parseable.
var fallbackRecommendations = []string{
	"1. Prioritize reuse of exact match features to accelerate implementation",
	"2. Create adaptation roadmap for similar features with gap analysis",
	"3. Assess delta features for complexity and dependencies",
	"4. Consider phased rollout approach for new capabilities",
}

const recommendPromptTemplate = `Based on this feature comparison analysis:

Feature Comparison Results:
- Exact Matches: %d features can be reused as-is
- Similar Features: %d features need adaptation
- New Features (Delta): %d features require fresh implementation
- Reusability Score: %.1f%%

Provide 4-5 strategic recommendations for the implementation team. Focus on:
1. How to maximize reuse of exact matches
2. Strategy for adapting similar features
3. Prioritization approach for delta features
4. Risk mitigation and timeline considerations

Format as a numbered list.`

// Recommender turns comparison statistics into strategic implementation
// recommendations via a language model.
type Recommender struct {
	llm      driven.LLMService
	settings domain.LLMSettings
	log      *logger.Logger
}

// NewRecommender creates a recommender. The LLM service may be nil.
func NewRecommender(llm driven.LLMService, settings domain.LLMSettings, log *logger.Logger) *Recommender {
	if log == nil {
		log = logger.Nop()
	}
	return &Recommender{llm: llm, settings: settings, log: log}
}

// Generate produces recommendations for the given statistics. Any
// failure yields the fixed fallback list instead of an error.
func (r *Recommender) Generate(ctx context.Context, stats domain.Statistics) []string {
	if r.llm == nil {
		return fallbackRecommendations
	}

	prompt := fmt.Sprintf(recommendPromptTemplate,
		stats.ExactCount, stats.SimilarCount, stats.DeltaCount, stats.ReusabilityScore)

	response, err := r.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   r.settings.MaxTokens,
		Temperature: r.settings.Temperature,
	})
	if err != nil {
		r.log.Warn("Recommendation generation failed: %v", err)
		return fallbackRecommendations
	}

	recommendations := parseRecommendations(response)
	if len(recommendations) == 0 {
		return fallbackRecommendations
	}
	return recommendations
}

// parseRecommendations keeps lines that look like list entries: lines
// starting with a digit or a dash.
func parseRecommendations(response string) []string {
	var out []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if (line[0] >= '0' && line[0] <= '9') || strings.HasPrefix(line, "-") {
			out = append(out, line)
		}
	}
	return out
}
