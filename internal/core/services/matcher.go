package services

import (
	"context"
	"fmt"

	"github.com/reqlens/reqlens-cli/internal/core/domain"
	"github.com/reqlens/reqlens-cli/internal/core/ports/driven"
	"github.com/reqlens/reqlens-cli/internal/logger"
)

// gapAnalyzer produces a prose explanation of the gap between a similar
// pair. Implemented by GapAnalyzer; stubbed in tests.
type gapAnalyzer interface {
	AnalyzeGap(ctx context.Context, newFeature, matched *domain.Feature) string
}

// Matcher classifies new features against an existing feature set using
// semantic similarity over embeddings.
//
// Assignment policy: first-come greedy with stable tie-break. New
// features are processed in input order; each takes the unclaimed
// existing feature with the strictly highest similarity, so the
// first-encountered existing feature wins ties. This is deliberately
// not a global-optimum bipartite assignment - swapping it out would
// change classification outcomes and break run reproducibility.
type Matcher struct {
	embedder         driven.EmbeddingService
	gap              gapAnalyzer
	exactThreshold   float64
	similarThreshold float64
	log              *logger.Logger
}

// NewMatcher creates a matcher. The gap analyzer may be nil, in which
// case similar pairs carry no analysis. Thresholds must satisfy
// 0 <= similar <= exact <= 1.
func NewMatcher(
	embedder driven.EmbeddingService,
	gap gapAnalyzer,
	exactThreshold, similarThreshold float64,
	log *logger.Logger,
) (*Matcher, error) {
	if similarThreshold < 0 || exactThreshold > 1 || similarThreshold > exactThreshold {
		return nil, fmt.Errorf("%w: similar=%.2f exact=%.2f",
			domain.ErrInvalidThresholds, similarThreshold, exactThreshold)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Matcher{
		embedder:         embedder,
		gap:              gap,
		exactThreshold:   exactThreshold,
		similarThreshold: similarThreshold,
		log:              log,
	}, nil
}

// Match classifies every new feature as exact, similar or delta.
// Each existing feature is claimed by at most one new feature per run.
func (m *Matcher) Match(
	ctx context.Context, newFeatures, existingFeatures []domain.Feature,
) (exact, similar []domain.MatchPair, delta []domain.Feature, err error) {
	if m.embedder == nil {
		return nil, nil, nil, domain.ErrEmbeddingUnavailable
	}

	m.log.Section("Similarity Matching")
	m.log.Info("Comparing %d new features against %d existing features",
		len(newFeatures), len(existingFeatures))

	newVectors := m.embedAll(ctx, newFeatures)
	existingVectors := m.embedAll(ctx, existingFeatures)

	claimed := make([]bool, len(existingFeatures))

	for i := range newFeatures {
		newFeature := &newFeatures[i]

		bestScore := 0.0
		bestIndex := -1
		for j := range existingFeatures {
			if claimed[j] {
				continue
			}
			score := Similarity(newVectors[i], existingVectors[j])
			if score > bestScore {
				bestScore = score
				bestIndex = j
			}
		}

		switch {
		case bestIndex >= 0 && bestScore >= m.exactThreshold:
			claimed[bestIndex] = true
			matched := &existingFeatures[bestIndex]
			exact = append(exact, domain.MatchPair{
				New:     newFeature,
				Matched: matched,
				Score:   bestScore,
				Kind:    domain.MatchExact,
			})
			m.log.Debug("Exact match: %s <-> %s (%.2f)", newFeature.Title, matched.Title, bestScore)

		case bestIndex >= 0 && bestScore >= m.similarThreshold:
			claimed[bestIndex] = true
			matched := &existingFeatures[bestIndex]
			pair := domain.MatchPair{
				New:     newFeature,
				Matched: matched,
				Score:   bestScore,
				Kind:    domain.MatchSimilar,
			}
			if m.gap != nil {
				analysis := m.gap.AnalyzeGap(ctx, newFeature, matched)
				pair.GapAnalysis = &analysis
			}
			similar = append(similar, pair)
			m.log.Debug("Similar match: %s <-> %s (%.2f)", newFeature.Title, matched.Title, bestScore)

		default:
			delta = append(delta, *newFeature)
			m.log.Debug("Delta feature: %s (best score: %.2f)", newFeature.Title, bestScore)
		}
	}

	m.log.Info("Matching complete: %d exact, %d similar, %d delta",
		len(exact), len(similar), len(delta))

	return exact, similar, delta, nil
}

// embedAll embeds every feature in one batch call. A failed batch
// degrades to zero vectors so similarity collapses to the minimum score
// instead of aborting the comparison.
func (m *Matcher) embedAll(ctx context.Context, features []domain.Feature) [][]float32 {
	if len(features) == 0 {
		return nil
	}

	texts := make([]string, len(features))
	for i, f := range features {
		texts[i] = f.EmbeddingText()
	}

	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil || len(vectors) != len(features) {
		if err != nil {
			m.log.Warn("Embedding batch failed, falling back to zero vectors: %v", err)
		} else {
			m.log.Warn("Embedding batch returned %d vectors for %d texts, falling back to zero vectors",
				len(vectors), len(features))
		}
		dims := m.embedder.Dimensions()
		vectors = make([][]float32, len(features))
		for i := range vectors {
			vectors[i] = make([]float32, dims)
		}
	}

	return vectors
}
