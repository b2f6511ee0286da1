package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
)

// mockLLM implements driven.LLMService with a canned response.
type mockLLM struct {
	response   string
	err        error
	lastPrompt string
	calls      int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

var _ driven.LLMService = (*mockLLM)(nil)

func TestAnalyzeGap(t *testing.T) {
	llm := &mockLLM{response: "  The new requirement adds conditional rules.\n"}
	analyzer := NewGapAnalyzer(llm, domain.LLMSettings{Temperature: 0.3, MaxTokens: 500}, nil)

	newFeature := feature("n_1", "Call forwarding", "Conditional forwarding rules.")
	matched := feature("e_1", "Call forwarding", "Unconditional forwarding.")

	got := analyzer.AnalyzeGap(context.Background(), &newFeature, &matched)

	assert.Equal(t, "The new requirement adds conditional rules.", got)
	assert.Contains(t, llm.lastPrompt, "Conditional forwarding rules.")
	assert.Contains(t, llm.lastPrompt, "Unconditional forwarding.")
}

func TestAnalyzeGapLLMFailure(t *testing.T) {
	llm := &mockLLM{err: errors.New("rate limited")}
	analyzer := NewGapAnalyzer(llm, domain.LLMSettings{}, nil)

	newFeature := feature("n_1", "a", "a")
	matched := feature("e_1", "b", "b")

	got := analyzer.AnalyzeGap(context.Background(), &newFeature, &matched)
	assert.Equal(t, GapFallback, got)
}

func TestAnalyzeGapNilLLM(t *testing.T) {
	analyzer := NewGapAnalyzer(nil, domain.LLMSettings{}, nil)

	newFeature := feature("n_1", "a", "a")
	matched := feature("e_1", "b", "b")

	got := analyzer.AnalyzeGap(context.Background(), &newFeature, &matched)
	assert.Equal(t, GapFallback, got)
}
