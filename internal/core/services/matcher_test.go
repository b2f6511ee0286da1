package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with fixed vectors
// keyed by the embedding text, making match outcomes reproducible
// without network access.
type mockEmbedder struct {
	vectors  map[string][]float32
	batchErr error
	dims     int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	if v, ok := m.vectors[text]; ok {
		return v
	}
	return make([]float32, m.Dimensions())
}

func (m *mockEmbedder) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbedder) ModelName() string           { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                { return nil }

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

// mockGapAnalyzer records which pairs were analyzed.
type mockGapAnalyzer struct {
	calls    int
	analysis string
}

func (m *mockGapAnalyzer) AnalyzeGap(_ context.Context, _, _ *domain.Feature) string {
	m.calls++
	return m.analysis
}

// --- Helpers ---

func feature(id, title, description string) domain.Feature {
	return domain.Feature{
		ID:          id,
		Title:       title,
		Description: description,
		Source:      "test",
		RawText:     title + " " + description,
	}
}

func newTestMatcher(t *testing.T, embedder driven.EmbeddingService, gap gapAnalyzer, exact, similar float64) *Matcher {
	t.Helper()
	m, err := NewMatcher(embedder, gap, exact, similar, nil)
	require.NoError(t, err)
	return m
}

// --- Tests ---

func TestNewMatcherThresholdValidation(t *testing.T) {
	embedder := &mockEmbedder{}

	tests := []struct {
		name    string
		exact   float64
		similar float64
		wantErr bool
	}{
		{"valid defaults", 0.95, 0.70, false},
		{"equal thresholds", 0.8, 0.8, false},
		{"boundary values", 1.0, 0.0, false},
		{"similar above exact", 0.7, 0.9, true},
		{"negative similar", 0.9, -0.1, true},
		{"exact above one", 1.1, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatcher(embedder, nil, tt.exact, tt.similar, nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidThresholds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatchClassification(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"Call forwarding. Forward incoming calls.":       {1, 0, 0},
		"Call forwarding. Forward calls to a number.":    {1, 0, 0},          // identical -> exact
		"Usage alerts. Notify on high usage.":            {0.8, 0.6, 0},      // cosine 0.8 -> 0.9 rescaled -> similar
		"Usage caps. Warn when usage is high.":           {1, 0, 0},
		"Voicemail transcription. Voicemail to text.":    {0, 0, 1},          // orthogonal -> delta
	}}

	newFeatures := []domain.Feature{
		feature("n_1", "Call forwarding", "Forward incoming calls."),
		feature("n_2", "Usage alerts", "Notify on high usage."),
		feature("n_3", "Voicemail transcription", "Voicemail to text."),
	}
	existingFeatures := []domain.Feature{
		feature("e_1", "Call forwarding", "Forward calls to a number."),
		feature("e_2", "Usage caps", "Warn when usage is high."),
	}

	gap := &mockGapAnalyzer{analysis: "needs alert scheduling"}
	m := newTestMatcher(t, embedder, gap, 0.95, 0.70)

	exact, similar, delta, err := m.Match(context.Background(), newFeatures, existingFeatures)
	require.NoError(t, err)

	require.Len(t, exact, 1)
	assert.Equal(t, "n_1", exact[0].New.ID)
	assert.Equal(t, "e_1", exact[0].Matched.ID)
	assert.Equal(t, domain.MatchExact, exact[0].Kind)
	assert.Nil(t, exact[0].GapAnalysis)

	require.Len(t, similar, 1)
	assert.Equal(t, "n_2", similar[0].New.ID)
	assert.Equal(t, "e_2", similar[0].Matched.ID)
	assert.Equal(t, domain.MatchSimilar, similar[0].Kind)
	require.NotNil(t, similar[0].GapAnalysis)
	assert.Equal(t, "needs alert scheduling", *similar[0].GapAnalysis)

	require.Len(t, delta, 1)
	assert.Equal(t, "n_3", delta[0].ID)

	// Gap analysis runs for similar pairs only.
	assert.Equal(t, 1, gap.calls)
}

// Every new feature lands in exactly one bucket; the counts always sum
// to the new-feature count.
func TestMatchPartition(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"a. a": {1, 0, 0},
		"b. b": {0.8, 0.6, 0},
		"c. c": {0, 1, 0},
		"x. x": {1, 0, 0},
		"y. y": {0, 0, 1},
	}}

	newFeatures := []domain.Feature{
		feature("n_1", "a", "a"),
		feature("n_2", "b", "b"),
		feature("n_3", "c", "c"),
	}
	existingFeatures := []domain.Feature{
		feature("e_1", "x", "x"),
		feature("e_2", "y", "y"),
	}

	thresholds := []struct{ exact, similar float64 }{
		{0.95, 0.70}, {1.0, 0.0}, {0.5, 0.5}, {0.9, 0.1},
	}

	for _, th := range thresholds {
		m := newTestMatcher(t, embedder, nil, th.exact, th.similar)
		exact, similar, delta, err := m.Match(context.Background(), newFeatures, existingFeatures)
		require.NoError(t, err)
		assert.Equal(t, len(newFeatures), len(exact)+len(similar)+len(delta),
			"thresholds exact=%.2f similar=%.2f", th.exact, th.similar)
	}
}

// A claimed existing feature is removed from the pool; a second new
// feature with the same vector cannot claim it again.
func TestMatchNoDoubleClaim(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"first. first":   {1, 0, 0},
		"second. second": {1, 0, 0},
		"only. only":     {1, 0, 0},
	}}

	newFeatures := []domain.Feature{
		feature("n_1", "first", "first"),
		feature("n_2", "second", "second"),
	}
	existingFeatures := []domain.Feature{
		feature("e_1", "only", "only"),
	}

	m := newTestMatcher(t, embedder, nil, 0.95, 0.70)
	exact, similar, delta, err := m.Match(context.Background(), newFeatures, existingFeatures)
	require.NoError(t, err)

	require.Len(t, exact, 1)
	assert.Equal(t, "n_1", exact[0].New.ID)
	assert.Empty(t, similar)
	require.Len(t, delta, 1)
	assert.Equal(t, "n_2", delta[0].ID)
}

// Strict > comparison means the first-encountered existing feature wins
// ties, giving a stable, order-dependent assignment.
func TestMatchStableTieBreak(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"new. new": {1, 0, 0},
		"one. one": {1, 0, 0},
		"two. two": {1, 0, 0},
	}}

	newFeatures := []domain.Feature{feature("n_1", "new", "new")}
	existingFeatures := []domain.Feature{
		feature("e_1", "one", "one"),
		feature("e_2", "two", "two"),
	}

	m := newTestMatcher(t, embedder, nil, 0.95, 0.70)
	exact, _, _, err := m.Match(context.Background(), newFeatures, existingFeatures)
	require.NoError(t, err)

	require.Len(t, exact, 1)
	assert.Equal(t, "e_1", exact[0].Matched.ID)
}

func TestMatchEmptyExistingSet(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float32{
		"a. a": {1, 0, 0},
	}}

	newFeatures := []domain.Feature{feature("n_1", "a", "a")}

	m := newTestMatcher(t, embedder, nil, 0.95, 0.70)
	exact, similar, delta, err := m.Match(context.Background(), newFeatures, nil)
	require.NoError(t, err)

	assert.Empty(t, exact)
	assert.Empty(t, similar)
	require.Len(t, delta, 1)
}

// An embedding batch failure degrades to zero vectors: everything
// classifies as delta instead of the comparison aborting.
func TestMatchEmbeddingFailureDegrades(t *testing.T) {
	embedder := &mockEmbedder{batchErr: errors.New("provider down"), dims: 4}

	newFeatures := []domain.Feature{
		feature("n_1", "a", "a"),
		feature("n_2", "b", "b"),
	}
	existingFeatures := []domain.Feature{feature("e_1", "x", "x")}

	m := newTestMatcher(t, embedder, nil, 0.95, 0.70)
	exact, similar, delta, err := m.Match(context.Background(), newFeatures, existingFeatures)

	require.NoError(t, err)
	assert.Empty(t, exact)
	assert.Empty(t, similar)
	assert.Len(t, delta, 2)
}

func TestMatchNilEmbedder(t *testing.T) {
	m := newTestMatcher(t, nil, nil, 0.95, 0.70)
	m.embedder = nil

	_, _, _, err := m.Match(context.Background(), []domain.Feature{feature("n_1", "a", "a")}, nil)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
