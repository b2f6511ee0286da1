package services

import "math"

// Similarity computes cosine similarity between two embedding vectors,
// rescaled from the natural [-1, 1] range into [0, 1] via (cos + 1) / 2.
// A zero-norm vector on either side yields 0; the function never panics
// on degenerate input. Accumulation runs in float64 to limit drift.
func Similarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}
