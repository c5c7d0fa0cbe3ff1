package vecdb

import (
	"context"
	"fmt"
	"maps"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecdb/distance"
	"github.com/hupe1980/vecdb/internal/queue"
)

// ctxCheckInterval is how many records a scan scores between context checks.
const ctxCheckInterval = 4096

// Result is a single search hit.
type Result struct {
	ID    string
	Score float32
}

type searchOptions struct {
	filter map[string]string
}

// SearchOption configures a single SearchNearest call.
type SearchOption func(*searchOptions)

// WithFilter restricts the search to records whose metadata contains every
// key of filter with exactly the given value. A nil or empty filter matches
// every record. Ranking and k semantics are unchanged.
func WithFilter(filter map[string]string) SearchOption {
	return func(o *searchOptions) {
		o.filter = maps.Clone(filter)
	}
}

// SearchNearest returns the k stored records most similar to query by cosine
// similarity, best first.
//
// The scan is exact and exhaustive. Ordering is deterministic:
//   - higher similarity ranks first;
//   - records whose similarity is undefined (zero-norm query or embedding,
//     NaN or infinite components) score NaN and rank after all others;
//   - equal scores are ordered by ascending ID.
//
// k == 0 yields an empty result and k larger than the number of records
// yields every record. The query length must equal the store dimension,
// otherwise an *ErrDimensionMismatch is returned.
func (s *Store) SearchNearest(ctx context.Context, query []float32, k int, optFns ...SearchOption) (results []Result, err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordSearch(k, time.Since(start), err)
		s.opts.logger.LogSearch(ctx, k, len(results), err)
	}()

	if err = checkDimension(s.dimension, len(query)); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, ErrInvalidK
	}

	so := searchOptions{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&so)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if k == 0 || len(s.byID) == 0 {
		return []Result{}, nil
	}

	var candidates []uint32
	if rows, ok := s.postings.Compile(so.filter); ok {
		if rows.IsEmpty() {
			return []Result{}, nil
		}
		candidates = rows.ToArray()
	}

	top, err := s.scan(ctx, query, k, candidates)
	if err != nil {
		return nil, err
	}

	items := top.Sorted()
	results = make([]Result, len(items))
	for i, it := range items {
		results[i] = Result{ID: it.ID, Score: it.Score}
	}
	return results, nil
}

// scan scores every live row (or only candidates, when non-nil) and keeps the
// best k. Callers must hold the read lock; workers rely on it too.
func (s *Store) scan(ctx context.Context, query []float32, k int, candidates []uint32) (*queue.TopK, error) {
	n := len(s.rows)
	if candidates != nil {
		n = len(candidates)
	}

	workers := s.opts.searchWorkers
	if workers <= 1 || n < s.opts.parallelThreshold {
		top := queue.NewTopK(k, n)
		if err := s.scoreRange(ctx, top, query, candidates, 0, n); err != nil {
			return nil, err
		}
		return top, nil
	}

	chunk := (n + workers - 1) / workers
	partials := make([]*queue.TopK, 0, workers)

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		top := queue.NewTopK(k, hi-lo)
		partials = append(partials, top)
		g.Go(func() error {
			return s.scoreRange(gctx, top, query, candidates, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := queue.NewTopK(k, k)
	for _, p := range partials {
		merged.Merge(p)
	}
	return merged, nil
}

// scoreRange offers positions [lo, hi) to top. A position indexes rows
// directly, or candidates when it is non-nil.
func (s *Store) scoreRange(ctx context.Context, top *queue.TopK, query []float32, candidates []uint32, lo, hi int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrDatabase{Op: "search", cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	for i := lo; i < hi; i++ {
		if (i-lo)%ctxCheckInterval == ctxCheckInterval-1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		row := uint32(i)
		if candidates != nil {
			row = candidates[i]
		}
		rec := s.rows[row]
		if rec == nil {
			continue
		}
		top.Offer(queue.Item{
			ID:    rec.ID,
			Score: distance.CosineSimilarity(query, rec.Embedding),
		})
	}
	return nil
}
