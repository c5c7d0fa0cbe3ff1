// Package testutil provides testing utilities for vecdb.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and computing exact
// nearest neighbors by brute force as an independent reference.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformRangeVectors(1000, 128) // uniform [-1, 1)
//	unit := rng.UnitVectors(1000, 128)         // on the unit hypersphere
//
// # Exact Search (Ground Truth)
//
//	want := testutil.ExactTopK(query, ids, vecs, k)
package testutil
