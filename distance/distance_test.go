package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Simple", []float32{1, 2, 3}, []float32{4, 5, 6}, 32},
		{"Zero", []float32{0, 0, 0}, []float32{0, 0, 0}, 0},
		{"Mixed", []float32{1, -1, 2}, []float32{1, 1, -2}, -4},
		{"Empty", []float32{}, []float32{}, 0},
		{"Single", []float32{2}, []float32{3}, 6},
		// Exercises the unrolled loop and the tail.
		{"Large", make([]float32, 1027), make([]float32, 1027), 0},
	}

	for i := range tests[5].a {
		tests[5].a[i] = 1
		tests[5].b[i] = 1
	}
	tests[5].expected = 1027

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dot(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-5)
		})
	}
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, float32(5), Norm([]float32{3, 4}), 1e-6)
	assert.Equal(t, float32(0), Norm([]float32{0, 0, 0}))
	assert.Equal(t, float32(0), Norm(nil))
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"Identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"Orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0},
		{"Opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, -1},
		{"ScaleInvariant", []float32{2, 0, 0}, []float32{7, 0, 0}, 1},
		{"Near", []float32{1, 0, 0}, []float32{0.9, 0.1, 0}, float32(0.9 / math.Sqrt(0.82))},
		{"Unrolled", []float32{1, 2, 3, 4, 5}, []float32{1, 2, 3, 4, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosineSimilarityNonFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		name string
		a, b []float32
	}{
		{"ZeroQuery", []float32{0, 0, 0}, []float32{1, 0, 0}},
		{"ZeroBoth", []float32{0, 0}, []float32{0, 0}},
		{"Empty", []float32{}, []float32{}},
		{"Infinity", []float32{inf, 0}, []float32{1, 0}},
		{"NaN", []float32{nan, 1}, []float32{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			assert.True(t, math.IsNaN(float64(got)), "expected NaN, got %v", got)
		})
	}
}

func TestCosineSimilarityClamped(t *testing.T) {
	v := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7}
	got := CosineSimilarity(v, v)
	assert.LessOrEqual(t, got, float32(1))
	assert.InDelta(t, float32(1), got, 1e-6)
}

func TestNormalizeL2(t *testing.T) {
	t.Run("InPlace", func(t *testing.T) {
		v := []float32{3, 4}
		ok := NormalizeL2InPlace(v)
		assert.True(t, ok)
		assert.InDelta(t, float32(0.6), v[0], 1e-6)
		assert.InDelta(t, float32(0.8), v[1], 1e-6)
		assert.InDelta(t, float32(1), Norm(v), 1e-6)

		vZero := []float32{0, 0}
		assert.False(t, NormalizeL2InPlace(vZero))

		assert.False(t, NormalizeL2InPlace([]float32{}))
	})

	t.Run("Copy", func(t *testing.T) {
		v := []float32{1, 0}
		dst, ok := NormalizeL2Copy(v)
		assert.True(t, ok)
		assert.Equal(t, float32(1), dst[0])
		assert.NotSame(t, &v[0], &dst[0])

		dst, ok = NormalizeL2Copy([]float32{0, 0})
		assert.False(t, ok)
		assert.Nil(t, dst)
	})
}

func BenchmarkCosineSimilarity768(b *testing.B) {
	x := make([]float32, 768)
	y := make([]float32, 768)
	for i := range x {
		x[i] = float32(i%13) / 13
		y[i] = float32(i%7) / 7
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CosineSimilarity(x, y)
	}
}
