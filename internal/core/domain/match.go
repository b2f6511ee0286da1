package domain

const unknownDescription = "Unknown"

// MatchKind classifies how closely a new feature matches an existing one.
type MatchKind string

// Available match kinds.
const (
	// MatchExact means the similarity met the exact threshold;
	// the existing feature can be reused as-is.
	MatchExact MatchKind = "exact"

	// MatchSimilar means the similarity fell between the similar and
	// exact thresholds; reuse requires adaptation.
	MatchSimilar MatchKind = "similar"
)

// IsValid returns true if the match kind is recognised.
func (k MatchKind) IsValid() bool {
	switch k {
	case MatchExact, MatchSimilar:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k MatchKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the kind.
func (k MatchKind) Description() string {
	switch k {
	case MatchExact:
		return "Exact match (reusable as-is)"
	case MatchSimilar:
		return "Similar match (needs adaptation)"
	default:
		return unknownDescription
	}
}

// MatchPair associates a new feature with the existing feature it was
// matched against. The pair borrows the features; they are shared with
// the sequences they were extracted into.
type MatchPair struct {
	// New is the feature from the new requirements set.
	New *Feature `json:"new_feature"`

	// Matched is the claimed feature from the existing set.
	Matched *Feature `json:"existing_feature"`

	// Score is the similarity in [0, 1].
	Score float64 `json:"similarity_score"`

	// Kind is exact or similar.
	Kind MatchKind `json:"match_type"`

	// GapAnalysis explains the capability gap for similar matches.
	// Nil means no analysis was requested; an empty string is a valid
	// empty analysis. Analysis failures carry a fixed fallback text.
	GapAnalysis *string `json:"gap_analysis"`
}
