package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoFeatures indicates no features could be extracted from a
	// required source. Fatal to the comparison that needed them.
	ErrNoFeatures = errors.New("no features extracted")

	// ErrInvalidThresholds indicates the threshold ordering constraint
	// 0 <= similar <= exact <= 1 was violated.
	ErrInvalidThresholds = errors.New("invalid thresholds")

	// ErrEmptyBatch indicates a batch comparison produced no results
	// because every source failed.
	ErrEmptyBatch = errors.New("no sources compared successfully")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Gap analysis and recommendations degrade to fallback text.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Similarity matching cannot run without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
