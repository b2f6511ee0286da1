package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// GapFallback is the fixed analysis text used whenever the LLM call
// fails or no LLM is configured. A single bad pair never aborts a run.
const GapFallback = "Unable to perform detailed gap analysis. Manual review recommended."

const gapPromptTemplate = `You are a requirements analyst. Compare these two features and identify the gaps.

NEW REQUIREMENT:
Title: %s
Description: %s

EXISTING IMPLEMENTATION:
Title: %s
Description: %s

Provide a concise gap analysis (2-3 sentences) explaining:
1. What additional capabilities the new requirement needs
2. What modifications to the existing implementation would be required

Gap Analysis:`

// GapAnalyzer explains the capability gap between a similar-matched
// pair using a language model.
type GapAnalyzer struct {
	llm      driven.LLMService
	settings domain.LLMSettings
	log      *logger.Logger
}

// NewGapAnalyzer creates a gap analyzer. The LLM service may be nil;
// every analysis then returns the fallback text.
func NewGapAnalyzer(llm driven.LLMService, settings domain.LLMSettings, log *logger.Logger) *GapAnalyzer {
	if log == nil {
		log = logger.Nop()
	}
	return &GapAnalyzer{llm: llm, settings: settings, log: log}
}

// AnalyzeGap produces a short prose explanation of what the new feature
// needs beyond the matched one. Failures degrade to GapFallback.
func (g *GapAnalyzer) AnalyzeGap(ctx context.Context, newFeature, matched *domain.Feature) string {
	if g.llm == nil {
		return GapFallback
	}

	prompt := fmt.Sprintf(gapPromptTemplate,
		newFeature.Title, newFeature.Description,
		matched.Title, matched.Description)

	response, err := g.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   g.settings.MaxTokens,
		Temperature: g.settings.Temperature,
	})
	if err != nil {
		g.log.Warn("Gap analysis failed for %s: %v", newFeature.ID, err)
		return GapFallback
	}

	return strings.TrimSpace(response)
}
