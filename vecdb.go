package vecdb

import (
	"context"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/vecdb/internal/metadata"
)

// Record is a stored vector with its metadata.
type Record struct {
	ID        string            `json:"id"`
	Embedding []float32         `json:"embedding"`
	Metadata  map[string]string `json:"metadata"`
}

// clone returns a deep copy that shares no memory with r.
func (r *Record) clone() Record {
	return Record{
		ID:        r.ID,
		Embedding: slices.Clone(r.Embedding),
		Metadata:  cloneMetadata(r.Metadata),
	}
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return make(map[string]string)
	}
	return maps.Clone(m)
}

// Store is an in-memory vector store answering exact cosine k-NN queries.
//
// A Store is safe for concurrent use. Reads (Get, SearchNearest, Len) share a
// read lock; writes (Insert, Delete) hold the write lock for the duration of
// a single mutation, so no caller ever observes a half-applied write.
// Callers always receive copies; nothing returned aliases internal state.
type Store struct {
	dimension int
	opts      options

	mu       sync.RWMutex
	rows     []*Record // dense slots scanned by search; nil entries are free
	free     []uint32  // free slots available for reuse
	byID     map[string]uint32
	postings *metadata.Index
}

// New creates an empty Store holding vectors of the given dimension.
// The dimension is immutable for the lifetime of the store.
func New(dimension int, optFns ...Option) (*Store, error) {
	if dimension <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dimension}
	}

	opts := applyOptions(optFns)
	opts.logger = opts.logger.WithDimension(dimension)

	return &Store{
		dimension: dimension,
		opts:      opts,
		byID:      make(map[string]uint32),
		postings:  metadata.New(),
	}, nil
}

// Dimension returns the fixed vector dimension of the store.
func (s *Store) Dimension() int {
	return s.dimension
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Insert stores a record under id, fully replacing any existing record
// (embedding and metadata; nothing is merged).
//
// The embedding length must equal the store dimension, otherwise an
// *ErrDimensionMismatch is returned and the store is left unchanged.
// Component values are not validated; NaN and infinities are stored as given.
// embedding and meta are copied, so the caller may reuse them.
func (s *Store) Insert(ctx context.Context, id string, embedding []float32, meta map[string]string) (err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordInsert(time.Since(start), err)
		s.opts.logger.LogInsert(ctx, id, len(embedding), err)
	}()

	if err = checkDimension(s.dimension, len(embedding)); err != nil {
		return err
	}

	rec := &Record{
		ID:        id,
		Embedding: slices.Clone(embedding),
		Metadata:  cloneMetadata(meta),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if row, ok := s.byID[id]; ok {
		s.postings.Update(row, s.rows[row].Metadata, rec.Metadata)
		s.rows[row] = rec
		return nil
	}

	row, err := s.allocRow()
	if err != nil {
		return err
	}
	s.rows[row] = rec
	s.byID[id] = row
	s.postings.Add(row, rec.Metadata)
	return nil
}

// Get returns a copy of the record stored under id.
// It returns an *ErrRecordNotFound (matching ErrNotFound) if there is none.
func (s *Store) Get(ctx context.Context, id string) (rec Record, err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordGet(time.Since(start), err)
		s.opts.logger.LogGet(ctx, id, err)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.byID[id]
	if !ok {
		return Record{}, newNotFound(id)
	}
	return s.rows[row].clone(), nil
}

// Delete removes the record stored under id. Once Delete returns, neither
// Get nor SearchNearest observes the record.
// It returns an *ErrRecordNotFound (matching ErrNotFound) if there is none.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		s.opts.metricsCollector.RecordDelete(time.Since(start), err)
		s.opts.logger.LogDelete(ctx, id, err)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byID[id]
	if !ok {
		return newNotFound(id)
	}

	s.postings.Remove(row, s.rows[row].Metadata)
	s.rows[row] = nil
	s.free = append(s.free, row)
	delete(s.byID, id)
	return nil
}

// allocRow reserves a slot from the free list or by extending rows.
// Callers must hold the write lock.
func (s *Store) allocRow() (uint32, error) {
	if n := len(s.free); n > 0 {
		row := s.free[n-1]
		s.free = s.free[:n-1]
		return row, nil
	}
	if uint64(len(s.rows)) > math.MaxUint32 {
		return 0, &ErrDatabase{Op: "insert: row space exhausted"}
	}
	s.rows = append(s.rows, nil)
	return uint32(len(s.rows) - 1), nil
}
