package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.3, -0.7, 0.2}
	assert.InDelta(t, 1.0, Similarity(v, v), 1e-9)
}

func TestSimilaritySymmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-2, 0.5, 4}
	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}

func TestSimilarityOrthogonal(t *testing.T) {
	// Cosine 0 rescales to 0.5.
	a := []float32{1, 0}
	b := []float32{0, 1}
	assert.InDelta(t, 0.5, Similarity(a, b), 1e-9)
}

func TestSimilarityOpposite(t *testing.T) {
	// Cosine -1 rescales to 0.
	a := []float32{1, 0}
	b := []float32{-1, 0}
	assert.InDelta(t, 0.0, Similarity(a, b), 1e-9)
}

func TestSimilarityZeroNorm(t *testing.T) {
	zero := []float32{0, 0, 0}
	v := []float32{1, 2, 3}

	assert.Equal(t, 0.0, Similarity(zero, v))
	assert.Equal(t, 0.0, Similarity(v, zero))
	assert.Equal(t, 0.0, Similarity(zero, zero))
}

func TestSimilarityEmptyVectors(t *testing.T) {
	assert.Equal(t, 0.0, Similarity(nil, nil))
	assert.Equal(t, 0.0, Similarity([]float32{1}, nil))
}
