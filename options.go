package vecdb

import (
	"log/slog"
	"runtime"
)

// DefaultParallelThreshold is the store size from which a search scan is
// split across workers.
const DefaultParallelThreshold = 16384

type options struct {
	metricsCollector  MetricsCollector
	logger            *Logger
	searchWorkers     int
	parallelThreshold int
}

// Option configures Store construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &vecdb.BasicMetricsCollector{}
//	store, _ := vecdb.New(768, vecdb.WithMetricsCollector(metrics))
//	// ... use store ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := vecdb.NewJSONLogger(slog.LevelInfo)
//	store, _ := vecdb.New(768, vecdb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSearchWorkers sets the number of goroutines a large search scan is
// split across. 1 keeps every scan on the calling goroutine; values <= 0
// restore the default of runtime.GOMAXPROCS(0).
func WithSearchWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.searchWorkers = n
	}
}

// WithParallelThreshold sets the minimum number of scanned records before a
// search is split across workers. Values <= 0 restore the default.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultParallelThreshold
		}
		o.parallelThreshold = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
		searchWorkers:     runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
