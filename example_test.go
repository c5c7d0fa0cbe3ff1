package vecdb_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/vecdb"
)

// Example_searchNearest demonstrates inserting vectors and ranking them
// against a query.
func Example_searchNearest() {
	ctx := context.Background()
	store, err := vecdb.New(3)
	if err != nil {
		log.Fatal(err)
	}

	_ = store.Insert(ctx, "a", []float32{1, 0, 0}, map[string]string{"type": "test"})
	_ = store.Insert(ctx, "b", []float32{0, 1, 0}, nil)
	_ = store.Insert(ctx, "c", []float32{0.9, 0.1, 0}, nil)

	results, err := store.SearchNearest(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%s %.3f\n", r.ID, r.Score)
	}
	// Output:
	// a 1.000
	// c 0.994
}

// Example_filter demonstrates restricting a search by metadata.
func Example_filter() {
	ctx := context.Background()
	store, _ := vecdb.New(2)

	_ = store.Insert(ctx, "article-1", []float32{1, 0}, map[string]string{"type": "article"})
	_ = store.Insert(ctx, "recipe-1", []float32{1, 0.1}, map[string]string{"type": "recipe"})

	results, _ := store.SearchNearest(ctx, []float32{1, 0}, 10,
		vecdb.WithFilter(map[string]string{"type": "recipe"}))
	for _, r := range results {
		fmt.Println(r.ID)
	}
	// Output: recipe-1
}

// Example_errors demonstrates matching the store's error kinds.
func Example_errors() {
	ctx := context.Background()
	store, _ := vecdb.New(768)

	_, err := store.Get(ctx, "missing")
	fmt.Println(errors.Is(err, vecdb.ErrNotFound))

	err = store.Insert(ctx, "short", []float32{1, 2, 3}, nil)
	var dm *vecdb.ErrDimensionMismatch
	if errors.As(err, &dm) {
		fmt.Println(dm.Expected, dm.Actual)
	}
	// Output:
	// true
	// 768 3
}

// Example_metrics demonstrates collecting operation metrics.
func Example_metrics() {
	ctx := context.Background()
	metrics := &vecdb.BasicMetricsCollector{}
	store, _ := vecdb.New(2, vecdb.WithMetricsCollector(metrics))

	_ = store.Insert(ctx, "a", []float32{1, 0}, nil)
	_, _ = store.SearchNearest(ctx, []float32{1, 0}, 1)
	_ = store.Delete(ctx, "a")

	stats := metrics.GetStats()
	fmt.Println(stats.InsertCount, stats.SearchCount, stats.DeleteCount)
	// Output: 1 1 1
}
