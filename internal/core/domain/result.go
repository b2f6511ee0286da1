package domain

import "time"

// Statistics holds the coverage metrics derived from one comparison.
// All percentages are computed independently against the new-feature
// count; they are not renormalised to sum to exactly 100.
type Statistics struct {
	TotalNew      int `json:"total_new_features"`
	TotalExisting int `json:"total_existing_features"`
	ExactCount    int `json:"exact_matches_count"`
	SimilarCount  int `json:"similar_matches_count"`
	DeltaCount    int `json:"delta_count"`

	ExactMatchPercent   float64 `json:"exact_match_percentage"`
	SimilarMatchPercent float64 `json:"similar_match_percentage"`
	DeltaPercent        float64 `json:"delta_percentage"`

	// ReusabilityScore is the sum of the exact and similar match
	// percentages: the share of new features covered by any match.
	ReusabilityScore float64 `json:"reusability_score"`
}

// ComparisonResult is the output of one full comparison run.
type ComparisonResult struct {
	// RunID uniquely identifies this comparison run.
	RunID string `json:"run_id"`

	// NewDocument and ExistingDocument name the compared sources.
	NewDocument      string `json:"new_document"`
	ExistingDocument string `json:"existing_document"`

	NewCount      int `json:"new_features_count"`
	ExistingCount int `json:"existing_features_count"`

	ExactMatches   []MatchPair `json:"exact_matches"`
	SimilarMatches []MatchPair `json:"similar_matches"`
	DeltaFeatures  []Feature   `json:"delta_features"`

	// Timestamp records when the comparison ran. It is metadata, not a
	// statistic: two runs over identical inputs differ only here.
	Timestamp time.Time `json:"timestamp"`

	Statistics Statistics `json:"statistics"`
}

// ComputeStatistics derives coverage metrics from match and delta counts.
// It is a pure function: identical inputs always yield identical output,
// and the result depends on nothing but the arguments.
func ComputeStatistics(newCount, existingCount int, exact, similar []MatchPair, delta []Feature) Statistics {
	stats := Statistics{
		TotalNew:      newCount,
		TotalExisting: existingCount,
		ExactCount:    len(exact),
		SimilarCount:  len(similar),
		DeltaCount:    len(delta),
	}

	if newCount == 0 {
		return stats
	}

	total := float64(newCount)
	stats.ExactMatchPercent = float64(len(exact)) / total * 100
	stats.SimilarMatchPercent = float64(len(similar)) / total * 100
	stats.DeltaPercent = float64(len(delta)) / total * 100

	// Bit-for-bit the sum of the two match percentages, not an
	// independently computed ratio.
	stats.ReusabilityScore = stats.ExactMatchPercent + stats.SimilarMatchPercent

	return stats
}

// RunSummary is a compact view of a stored comparison run, as listed by
// the run-history store.
type RunSummary struct {
	RunID            string
	NewDocument      string
	ExistingDocument string
	NewCount         int
	ExistingCount    int
	ReusabilityScore float64
	Timestamp        time.Time
}
