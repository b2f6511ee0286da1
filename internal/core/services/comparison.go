package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driving"
	"github.com/reqlens/reqlens-cli/internal/extractor"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// Ensure ComparisonService implements the interface.
var _ driving.ComparisonService = (*ComparisonService)(nil)

// batchConcurrency bounds parallel comparisons in directory mode.
// Each comparison issues its own embedding calls, so this also caps
// concurrent requests against the provider.
const batchConcurrency = 4

// ComparisonService orchestrates extraction, matching and aggregation
// for one or many document pairs.
type ComparisonService struct {
	extractor *extractor.Extractor
	matcher   *Matcher
	runStore  driven.RunStore
	log       *logger.Logger
}

// NewComparisonService creates a comparison service. The run store is
// optional; when nil, completed runs are not persisted.
func NewComparisonService(
	ext *extractor.Extractor,
	matcher *Matcher,
	runStore driven.RunStore,
	log *logger.Logger,
) *ComparisonService {
	if log == nil {
		log = logger.Nop()
	}
	return &ComparisonService{
		extractor: ext,
		matcher:   matcher,
		runStore:  runStore,
		log:       log,
	}
}

// CompareDocuments compares two requirement documents. A source from
// which nothing can be extracted is fatal to the invocation.
func (s *ComparisonService) CompareDocuments(
	ctx context.Context, newPath, existingPath string, opts driving.CompareOptions,
) (*domain.ComparisonResult, error) {
	s.log.Section("Document Comparison")
	s.log.Info("Comparing %s vs %s", newPath, existingPath)

	newFeatures, err := s.extractor.ExtractFile(newPath, opts.NewLabel)
	if err != nil {
		return nil, err
	}
	existingFeatures, err := s.extractor.ExtractFile(existingPath, opts.ExistingLabel)
	if err != nil {
		return nil, err
	}

	if len(newFeatures) == 0 {
		return nil, fmt.Errorf("%w from %s", domain.ErrNoFeatures, newPath)
	}
	if len(existingFeatures) == 0 {
		return nil, fmt.Errorf("%w from %s", domain.ErrNoFeatures, existingPath)
	}

	exact, similar, delta, err := s.matcher.Match(ctx, newFeatures, existingFeatures)
	if err != nil {
		return nil, fmt.Errorf("matching failed: %w", err)
	}

	result := &domain.ComparisonResult{
		RunID:            uuid.New().String(),
		NewDocument:      filepath.Base(newPath),
		ExistingDocument: filepath.Base(existingPath),
		NewCount:         len(newFeatures),
		ExistingCount:    len(existingFeatures),
		ExactMatches:     exact,
		SimilarMatches:   similar,
		DeltaFeatures:    delta,
		Timestamp:        time.Now(),
	}
	result.Statistics = domain.ComputeStatistics(
		result.NewCount, result.ExistingCount, exact, similar, delta)

	s.saveRun(ctx, result)

	s.log.Info("Comparison complete: reusability %.1f%%", result.Statistics.ReusabilityScore)
	return result, nil
}

// CompareAgainstDirectory compares the new document against every
// markdown file in dir. Comparisons run concurrently, but results keep
// the directory iteration order so BestMatch tie-breaking stays
// deterministic regardless of completion order.
func (s *ComparisonService) CompareAgainstDirectory(
	ctx context.Context, newPath, dir string,
) ([]*domain.ComparisonResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no markdown files in %s", domain.ErrNoFeatures, dir)
	}

	s.log.Section("Batch Comparison")
	s.log.Info("Comparing %s against %d documents in %s", newPath, len(paths), dir)

	slots := make([]*domain.ComparisonResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			result, err := s.CompareDocuments(gctx, newPath, path, driving.CompareOptions{})
			if err != nil {
				// A failed source is skipped, not fatal to the batch.
				s.log.Warn("Error comparing with %s: %v", path, err)
				return nil
			}
			slots[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*domain.ComparisonResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}

	if len(results) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	s.log.Info("Batch comparison complete: %d of %d sources succeeded", len(results), len(paths))
	return results, nil
}

// BestMatch returns the result with the highest reusability score.
// Strict comparison keeps the first maximum on ties.
func (s *ComparisonService) BestMatch(results []*domain.ComparisonResult) *domain.ComparisonResult {
	var best *domain.ComparisonResult
	for _, r := range results {
		if best == nil || r.Statistics.ReusabilityScore > best.Statistics.ReusabilityScore {
			best = r
		}
	}
	return best
}

// saveRun persists a completed run. Persistence is best-effort; a store
// failure is a warning, never a comparison failure.
func (s *ComparisonService) saveRun(ctx context.Context, result *domain.ComparisonResult) {
	if s.runStore == nil {
		return
	}
	if err := s.runStore.SaveRun(ctx, result); err != nil {
		s.log.Warn("Could not persist run %s: %v", result.RunID, err)
	}
}
