package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testResult(runID string, ts time.Time) *domain.ComparisonResult {
	gap := "Needs conditional rules."
	result := &domain.ComparisonResult{
		RunID:            runID,
		NewDocument:      "new.md",
		ExistingDocument: "existing.md",
		NewCount:         2,
		ExistingCount:    2,
		SimilarMatches: []domain.MatchPair{
			{
				New:         &domain.Feature{ID: "new_1", Title: "Call forwarding", Source: "new"},
				Matched:     &domain.Feature{ID: "exist_1", Title: "Call redirect", Source: "existing"},
				Score:       0.82,
				Kind:        domain.MatchSimilar,
				GapAnalysis: &gap,
			},
		},
		DeltaFeatures: []domain.Feature{
			{ID: "new_2", Title: "Voicemail", Source: "new"},
		},
		Timestamp: ts,
	}
	result.Statistics = domain.ComputeStatistics(
		result.NewCount, result.ExistingCount,
		result.ExactMatches, result.SimilarMatches, result.DeltaFeatures)
	return result
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	original := testResult("run-1", time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, original))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, original.RunID, got.RunID)
	assert.Equal(t, original.NewDocument, got.NewDocument)
	assert.Equal(t, original.NewCount, got.NewCount)
	require.Len(t, got.SimilarMatches, 1)
	assert.Equal(t, "Call forwarding", got.SimilarMatches[0].New.Title)
	require.NotNil(t, got.SimilarMatches[0].GapAnalysis)
	assert.Equal(t, "Needs conditional rules.", *got.SimilarMatches[0].GapAnalysis)
	require.Len(t, got.DeltaFeatures, 1)
	assert.Equal(t, "Voicemail", got.DeltaFeatures[0].Title)
	assert.InDelta(t, 50.0, got.Statistics.ReusabilityScore, 0.001)
}

func TestGetRunNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveRunUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testResult("run-1", time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveRun(ctx, first))

	updated := testResult("run-1", time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC))
	updated.NewDocument = "revised.md"
	require.NoError(t, store.SaveRun(ctx, updated))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "revised.md", got.NewDocument)

	summaries, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestSaveRunRejectsEmptyID(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveRun(context.Background(), &domain.ComparisonResult{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		require.NoError(t, store.SaveRun(ctx, testResult(id, base.Add(time.Duration(i)*time.Hour))))
	}

	summaries, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "run-c", summaries[0].RunID)
	assert.Equal(t, "run-b", summaries[1].RunID)
	assert.Equal(t, "run-a", summaries[2].RunID)
}

func TestListRunsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		require.NoError(t, store.SaveRun(ctx, testResult("run-"+id, base.Add(time.Duration(i)*time.Minute))))
	}

	summaries, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, "run-e", summaries[0].RunID)
}

func TestListRunsEmpty(t *testing.T) {
	store := newTestStore(t)

	summaries, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(ctx, testResult("run-1", time.Now())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
}
