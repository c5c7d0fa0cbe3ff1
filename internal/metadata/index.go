// Package metadata provides the inverted index behind metadata-filtered search.
package metadata

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Index maps key -> value -> rows holding that exact pair.
//
// Rows are dense store-internal slots. Index is not safe for concurrent use;
// the owning store serializes writers and lets readers share it.
type Index struct {
	fields map[string]map[string]*roaring.Bitmap
}

// New creates an empty index.
func New() *Index {
	return &Index{fields: make(map[string]map[string]*roaring.Bitmap)}
}

// Add records every pair of doc under row.
func (ix *Index) Add(row uint32, doc map[string]string) {
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			vm = make(map[string]*roaring.Bitmap)
			ix.fields[k] = vm
		}
		rb, ok := vm[v]
		if !ok {
			rb = roaring.New()
			vm[v] = rb
		}
		rb.Add(row)
	}
}

// Remove drops every pair of doc from row. Empty postings are pruned.
func (ix *Index) Remove(row uint32, doc map[string]string) {
	for k, v := range doc {
		vm, ok := ix.fields[k]
		if !ok {
			continue
		}
		rb, ok := vm[v]
		if !ok {
			continue
		}
		rb.Remove(row)
		if rb.IsEmpty() {
			delete(vm, v)
		}
		if len(vm) == 0 {
			delete(ix.fields, k)
		}
	}
}

// Update replaces the postings of row.
func (ix *Index) Update(row uint32, oldDoc, newDoc map[string]string) {
	ix.Remove(row, oldDoc)
	ix.Add(row, newDoc)
}

// Compile resolves an equality filter to the set of matching rows.
//
// Every key/value pair must match (logical AND). ok is false for an empty
// filter, meaning the caller should not filter at all. The returned bitmap
// is a fresh copy owned by the caller.
func (ix *Index) Compile(filter map[string]string) (rows *roaring.Bitmap, ok bool) {
	if len(filter) == 0 {
		return nil, false
	}

	sets := make([]*roaring.Bitmap, 0, len(filter))
	for k, v := range filter {
		rb := ix.postings(k, v)
		if rb == nil {
			// Key/value doesn't exist; nothing can match.
			return roaring.New(), true
		}
		sets = append(sets, rb)
	}

	if len(sets) == 1 {
		return sets[0].Clone(), true
	}
	return roaring.FastAnd(sets...), true
}

// Cardinality returns the number of rows carrying key=value.
func (ix *Index) Cardinality(key, value string) uint64 {
	rb := ix.postings(key, value)
	if rb == nil {
		return 0
	}
	return rb.GetCardinality()
}

// Keys returns the number of distinct metadata keys indexed.
func (ix *Index) Keys() int {
	return len(ix.fields)
}

func (ix *Index) postings(key, value string) *roaring.Bitmap {
	vm, ok := ix.fields[key]
	if !ok {
		return nil
	}
	return vm[value]
}
