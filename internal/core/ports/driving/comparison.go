package driving

import (
	"context"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
)

// CompareOptions configures one comparison invocation.
type CompareOptions struct {
	// NewLabel and ExistingLabel override the source labels.
	// Empty labels default to the filename stem.
	NewLabel      string
	ExistingLabel string
}

// ComparisonService compares requirement documents.
type ComparisonService interface {
	// CompareDocuments compares one new-requirements document against one
	// existing-implementation document. It either returns a complete
	// result or fails outright; there is no partial single comparison.
	CompareDocuments(ctx context.Context, newPath, existingPath string, opts CompareOptions) (*domain.ComparisonResult, error)

	// CompareAgainstDirectory compares the new document against every
	// markdown document in dir. Sources that fail are skipped and logged;
	// the batch fails only when no source succeeds. Results keep the
	// directory iteration order.
	CompareAgainstDirectory(ctx context.Context, newPath, dir string) ([]*domain.ComparisonResult, error)

	// BestMatch selects the result with the highest reusability score.
	// Ties break to the earliest result. Returns nil for empty input.
	BestMatch(results []*domain.ComparisonResult) *domain.ComparisonResult
}
