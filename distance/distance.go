package distance

import (
	"math"
	"slices"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return float32(dot64(a, b))
}

// Norm calculates the L2 norm (magnitude) of v.
func Norm(v []float32) float32 {
	return float32(math.Sqrt(dot64(v, v)))
}

// CosineSimilarity calculates dot(a, b) / (‖a‖·‖b‖).
// Assumes vectors are the same length (caller's responsibility).
//
// The result is clamped to [-1, 1]. If either vector has zero norm, or a
// component is NaN or infinite, the quotient is undefined and NaN is
// returned; callers decide how NaN ranks.
func CosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64

	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		a0, a1, a2, a3 := float64(a[i]), float64(a[i+1]), float64(a[i+2]), float64(a[i+3])
		b0, b1, b2, b3 := float64(b[i]), float64(b[i+1]), float64(b[i+2]), float64(b[i+3])
		dot += a0*b0 + a1*b1 + a2*b2 + a3*b3
		normA += a0*a0 + a1*a1 + a2*a2 + a3*a3
		normB += b0*b0 + b1*b1 + b2*b2 + b3*b3
	}
	for ; i < n; i++ {
		ai, bi := float64(a[i]), float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return float32(math.NaN())
	}
	return float32(max(-1, min(1, sim)))
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm2 := dot64(v, v)
	if norm2 == 0 {
		return false
	}
	inv := 1 / math.Sqrt(norm2)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}

func dot64(a, b []float32) float64 {
	var ret float64

	n := len(a)
	i := 0
	for ; i+4 <= n; i += 4 {
		ret += float64(a[i])*float64(b[i]) +
			float64(a[i+1])*float64(b[i+1]) +
			float64(a[i+2])*float64(b[i+2]) +
			float64(a[i+3])*float64(b[i+3])
	}
	for ; i < n; i++ {
		ret += float64(a[i]) * float64(b[i])
	}

	return ret
}
