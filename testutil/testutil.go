package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/vecdb/distance"
)

// SearchResult represents a search result.
type SearchResult struct {
	ID    string
	Score float32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// UniformRangeVectors generates random vectors with values in range [-1, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformRangeVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()*2 - 1
		}
		vectors[i] = vec
	}

	return vectors
}

// UnitVectors generates L2-normalized random vectors (on the hypersphere).
// Uses Gaussian components for a uniform distribution on the sphere.
func (r *RNG) UnitVectors(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float32, num)
	for i := range num {
		vec := make([]float32, dimensions)
		for j := range vec {
			vec[j] = float32(r.rand.NormFloat64())
		}
		if !distance.NormalizeL2InPlace(vec) {
			vec[0] = 1
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors clustered around random centroids.
// Clustered data produces many near-ties, which stresses ranking order.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float32) [][]float32 {
	centroids := r.UnitVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float32, num)
	for i := range num {
		centroid := centroids[i%clusters]
		vec := make([]float32, dim)
		for j := range dim {
			vec[j] = centroid[j] + float32(r.rand.NormFloat64())*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// IDs returns n identifiers of the form prefix-000042.
func IDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%06d", prefix, i)
	}
	return ids
}

// ExactTopK computes the k most cosine-similar vectors to query by full sort.
//
// Ordering: descending score, NaN scores last, ties by ascending ID. It is
// written independently of the store's heap so it can serve as an oracle.
func ExactTopK(query []float32, ids []string, vectors [][]float32, k int) []SearchResult {
	all := make([]SearchResult, len(vectors))
	for i, v := range vectors {
		all[i] = SearchResult{ID: ids[i], Score: distance.CosineSimilarity(query, v)}
	}

	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		aNaN, bNaN := math.IsNaN(float64(a.Score)), math.IsNaN(float64(b.Score))
		if aNaN != bNaN {
			return bNaN
		}
		if !aNaN && a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.ID < b.ID
	})

	if k < len(all) {
		all = all[:k]
	}
	return all
}
