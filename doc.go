// Package vecdb provides an in-memory vector store for embedding retrieval.
//
// A Store holds fixed-dimension float32 embeddings keyed by string ID, each
// with an opaque string-to-string metadata map, and answers exact k-nearest
// neighbor queries ranked by cosine similarity.
//
// # Quick Start
//
//	ctx := context.Background()
//	store, err := vecdb.New(768)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = store.Insert(ctx, "doc-1", embedding, map[string]string{"type": "article"})
//
//	results, err := store.SearchNearest(ctx, query, 10)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Score)
//	}
//
//	rec, err := store.Get(ctx, "doc-1")
//	err = store.Delete(ctx, "doc-1")
//
// # Search
//
// Search is an exact, exhaustive scan; there is no approximate index. Large
// stores split the scan across goroutines (see WithSearchWorkers), which
// never changes the result. Results can be restricted to records carrying
// given metadata pairs:
//
//	results, err := store.SearchNearest(ctx, query, 10,
//	    vecdb.WithFilter(map[string]string{"type": "article"}))
//
// # Errors
//
// Insert and SearchNearest fail with *ErrDimensionMismatch when a vector's
// length differs from the store dimension. Get and Delete fail with
// *ErrRecordNotFound, which matches ErrNotFound:
//
//	if errors.Is(err, vecdb.ErrNotFound) {
//	    // 404
//	}
//
// # Observability
//
// Structured logging uses log/slog through Logger (WithLogger, WithLogLevel);
// operation metrics are reported to a MetricsCollector (WithMetricsCollector).
package vecdb
