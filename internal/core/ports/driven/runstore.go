package driven

import (
	"context"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

// RunStore persists completed comparison runs.
// This is an optional service - when nil, run history is disabled and
// persistence failures never abort a comparison.
type RunStore interface {
	// SaveRun stores a completed comparison result.
	SaveRun(ctx context.Context, result *domain.ComparisonResult) error

	// GetRun retrieves a stored result by run ID.
	// Returns domain.ErrNotFound if no such run exists.
	GetRun(ctx context.Context, runID string) (*domain.ComparisonResult, error)

	// ListRuns returns summaries of the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.RunSummary, error)

	// Close releases resources.
	Close() error
}
