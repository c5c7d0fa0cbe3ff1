// Package queue provides the bounded top-k heap used by exact search.
package queue

import (
	"math"
	"slices"
	"strings"
)

// Item is a scored candidate.
type Item struct {
	ID    string
	Score float32
}

// Compare orders items by rank: higher score first, NaN scores after every
// other score, equal scores (and NaN pairs) by ascending ID.
//
// It returns a negative number when a ranks before b. For distinct IDs the
// order is total, so any selection built on it is deterministic.
func Compare(a, b Item) int {
	aNaN, bNaN := math.IsNaN(float64(a.Score)), math.IsNaN(float64(b.Score))
	switch {
	case aNaN && !bNaN:
		return 1
	case !aNaN && bNaN:
		return -1
	case !aNaN && a.Score > b.Score:
		return -1
	case !aNaN && a.Score < b.Score:
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

// TopK keeps the k best-ranked items seen so far.
//
// Internally it is a heap whose root is the worst retained item, so a better
// candidate replaces the root in O(log k). TopK is not safe for concurrent
// use; parallel scans keep one TopK per worker and Merge them.
type TopK struct {
	k     int
	items []Item
}

// NewTopK creates a TopK retaining at most k items.
// capacity is a sizing hint for the backing slice.
func NewTopK(k, capacity int) *TopK {
	return &TopK{
		k:     k,
		items: make([]Item, 0, max(0, min(k, capacity))),
	}
}

// Len returns the number of retained items.
func (t *TopK) Len() int { return len(t.items) }

// Offer considers item for inclusion.
func (t *TopK) Offer(item Item) {
	if t.k <= 0 {
		return
	}
	if len(t.items) < t.k {
		t.items = append(t.items, item)
		t.siftUp(len(t.items) - 1)
		return
	}
	if Compare(item, t.items[0]) < 0 {
		t.items[0] = item
		t.siftDown(0)
	}
}

// Merge offers every item retained by other.
func (t *TopK) Merge(other *TopK) {
	if other == nil {
		return
	}
	for _, item := range other.items {
		t.Offer(item)
	}
}

// Sorted returns the retained items, best first.
func (t *TopK) Sorted() []Item {
	out := slices.Clone(t.items)
	slices.SortFunc(out, Compare)
	return out
}

// Reset clears the queue for reuse.
func (t *TopK) Reset() {
	t.items = t.items[:0]
}

// worse reports whether the item at i ranks after the item at j; the worst
// item sits at the root.
func (t *TopK) worse(i, j int) bool {
	return Compare(t.items[i], t.items[j]) > 0
}

func (t *TopK) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !t.worse(i, p) {
			return
		}
		t.items[i], t.items[p] = t.items[p], t.items[i]
		i = p
	}
}

func (t *TopK) siftDown(i int) {
	n := len(t.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		worst := l
		r := l + 1
		if r < n && t.worse(r, l) {
			worst = r
		}
		if !t.worse(worst, i) {
			return
		}
		t.items[i], t.items[worst] = t.items[worst], t.items[i]
		i = worst
	}
}
