// Package distance provides the vector kernels used for similarity ranking.
//
// All kernels are portable Go. Reductions are accumulated in float64 so that
// long float32 vectors neither overflow nor lose the low bits of the result.
//
// # Usage
//
//	sim := distance.CosineSimilarity(a, b) // in [-1, 1], NaN for zero-norm input
//	dot := distance.Dot(a, b)
//	n := distance.Norm(a)
//	distance.NormalizeL2InPlace(vec)
package distance
