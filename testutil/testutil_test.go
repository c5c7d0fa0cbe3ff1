package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformRangeVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformRangeVectors(8, 32)

	assert.Equal(t, 8, len(v))
	assert.Equal(t, 32, len(v[0]))
	assert.Equal(t, 32, cap(v[0]))
	for _, vec := range v {
		for _, x := range vec {
			assert.GreaterOrEqual(t, x, float32(-1))
			assert.Less(t, x, float32(1))
		}
	}
}

func TestUnitVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UnitVectors(8, 32)

	assert.Equal(t, 8, len(v))
	for _, vec := range v {
		var sum float32
		for _, val := range vec {
			sum += val * val
		}
		assert.InDelta(t, float32(1.0), sum, 1e-5)
	}
}

func TestClusteredVectors(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.ClusteredVectors(100, 32, 5, 0.1)

	assert.Equal(t, 100, len(v))
	assert.Equal(t, 32, len(v[0]))
}

func TestSeedIsDeterministic(t *testing.T) {
	a := NewRNG(7).UniformRangeVectors(2, 4)
	b := NewRNG(7).UniformRangeVectors(2, 4)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), NewRNG(7).Seed())
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"v-000000", "v-000001"}, IDs("v", 2))
}

func TestExactTopK(t *testing.T) {
	ids := []string{"c", "a", "b", "zero", "dup"}
	vectors := [][]float32{
		{0.9, 0.1, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
		{2, 0, 0},
	}

	got := ExactTopK([]float32{1, 0, 0}, ids, vectors, 10)
	require.Len(t, got, 5)

	// "a" and "dup" tie at 1.0 and are ordered by ID.
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "dup", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.Equal(t, "b", got[3].ID)
	assert.Equal(t, "zero", got[4].ID)
	assert.True(t, math.IsNaN(float64(got[4].Score)))

	assert.Len(t, ExactTopK([]float32{1, 0, 0}, ids, vectors, 2), 2)
}
