package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairs(n int) []MatchPair {
	out := make([]MatchPair, n)
	return out
}

func features(n int) []Feature {
	out := make([]Feature, n)
	return out
}

func TestComputeStatistics(t *testing.T) {
	tests := []struct {
		name          string
		newCount      int
		existingCount int
		exact         int
		similar       int
		delta         int
		wantExactPct  float64
		wantReuse     float64
	}{
		{
			name:     "half reusable",
			newCount: 2, existingCount: 1,
			exact: 1, similar: 0, delta: 1,
			wantExactPct: 50.0, wantReuse: 50.0,
		},
		{
			name:     "all delta",
			newCount: 3, existingCount: 0,
			exact: 0, similar: 0, delta: 3,
			wantExactPct: 0.0, wantReuse: 0.0,
		},
		{
			name:     "fully covered",
			newCount: 4, existingCount: 5,
			exact: 3, similar: 1, delta: 0,
			wantExactPct: 75.0, wantReuse: 100.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStatistics(tt.newCount, tt.existingCount,
				pairs(tt.exact), pairs(tt.similar), features(tt.delta))

			assert.Equal(t, tt.newCount, stats.TotalNew)
			assert.Equal(t, tt.existingCount, stats.TotalExisting)
			assert.Equal(t, tt.exact, stats.ExactCount)
			assert.Equal(t, tt.similar, stats.SimilarCount)
			assert.Equal(t, tt.delta, stats.DeltaCount)
			assert.InDelta(t, tt.wantExactPct, stats.ExactMatchPercent, 1e-9)
			assert.InDelta(t, tt.wantReuse, stats.ReusabilityScore, 1e-9)
		})
	}
}

func TestComputeStatisticsZeroNewCount(t *testing.T) {
	stats := ComputeStatistics(0, 3, nil, nil, nil)

	assert.Equal(t, 0.0, stats.ExactMatchPercent)
	assert.Equal(t, 0.0, stats.SimilarMatchPercent)
	assert.Equal(t, 0.0, stats.DeltaPercent)
	assert.Equal(t, 0.0, stats.ReusabilityScore)
}

// Reusability is exactly the sum of the exact and similar percentages,
// not an independently rounded quantity.
func TestReusabilityIdentity(t *testing.T) {
	for newCount := 1; newCount <= 50; newCount++ {
		for exact := 0; exact <= newCount; exact++ {
			for similar := 0; similar+exact <= newCount; similar++ {
				delta := newCount - exact - similar
				stats := ComputeStatistics(newCount, 10,
					pairs(exact), pairs(similar), features(delta))

				sum := stats.ExactMatchPercent + stats.SimilarMatchPercent
				assert.Equal(t, sum, stats.ReusabilityScore,
					"n=%d exact=%d similar=%d", newCount, exact, similar)
			}
		}
	}
}

// One third plus two thirds does not round-trip through float64 as 100,
// so computing reusability as (exact+similar)/n would break the identity.
func TestReusabilityIdentityThirds(t *testing.T) {
	stats := ComputeStatistics(3, 3, pairs(1), pairs(2), nil)

	assert.Equal(t, stats.ExactMatchPercent+stats.SimilarMatchPercent, stats.ReusabilityScore)
	assert.NotEqual(t, 100.0, stats.ReusabilityScore)
}

func TestComputeStatisticsIdempotent(t *testing.T) {
	exact := pairs(2)
	similar := pairs(1)
	delta := features(4)

	first := ComputeStatistics(7, 9, exact, similar, delta)
	second := ComputeStatistics(7, 9, exact, similar, delta)

	assert.Equal(t, first, second)
}

// The persisted form is uniformly snake_case, down to the nested
// feature and match objects.
func TestResultSerializesSnakeCase(t *testing.T) {
	gap := "Missing conditional rules."
	result := ComparisonResult{
		RunID:       "run-1",
		NewDocument: "new.md",
		SimilarMatches: []MatchPair{
			{
				New:         &Feature{ID: "new_1", Title: "Call forwarding", Source: "new", RawText: "Call forwarding"},
				Matched:     &Feature{ID: "exist_1", Title: "Call redirect", Source: "existing"},
				Score:       0.82,
				Kind:        MatchSimilar,
				GapAnalysis: &gap,
			},
		},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	out := string(data)

	for _, key := range []string{
		`"run_id"`, `"similar_matches"`, `"new_feature"`, `"existing_feature"`,
		`"similarity_score"`, `"match_type"`, `"gap_analysis"`,
		`"id"`, `"title"`, `"source"`, `"raw_text"`,
	} {
		assert.Contains(t, out, key)
	}
	for _, key := range []string{`"New"`, `"Matched"`, `"Score"`, `"Kind"`, `"Title"`} {
		assert.NotContains(t, out, key)
	}
}

func TestMatchKind(t *testing.T) {
	assert.True(t, MatchExact.IsValid())
	assert.True(t, MatchSimilar.IsValid())
	assert.False(t, MatchKind("partial").IsValid())
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, unknownDescription, MatchKind("bogus").Description())
}

func TestFeatureValid(t *testing.T) {
	assert.True(t, Feature{Title: "a", Description: "b"}.Valid())
	assert.False(t, Feature{Title: "a"}.Valid())
	assert.False(t, Feature{Description: "b"}.Valid())
}

func TestFeatureEmbeddingText(t *testing.T) {
	f := Feature{Title: "Call forwarding", Description: "Forward incoming calls."}
	assert.Equal(t, "Call forwarding. Forward incoming calls.", f.EmbeddingText())
}
