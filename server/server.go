// Package server exposes a vecdb.Store over HTTP/JSON.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/resource"
)

// Config configures the HTTP listener.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	Gzip            bool
}

// DefaultConfig returns the listener defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8001",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxBodyBytes:    8 << 20,
		Gzip:            true,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *vecdb.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = vecdb.NoopLogger()
		}
		s.logger = logger
	}
}

// WithController enables request admission control.
func WithController(c *resource.Controller) Option {
	return func(s *Server) {
		s.controller = c
	}
}

// WithMetrics exposes the collector's counters on GET /stats.
// The same collector should be passed to vecdb.New.
func WithMetrics(mc *vecdb.BasicMetricsCollector) Option {
	return func(s *Server) {
		s.metrics = mc
	}
}

// Server serves one Store.
type Server struct {
	store      *vecdb.Store
	cfg        Config
	logger     *vecdb.Logger
	controller *resource.Controller
	metrics    *vecdb.BasicMetricsCollector
	handler    http.Handler
}

// New builds a Server for store. Zero Config fields take DefaultConfig values.
func New(store *vecdb.Store, cfg Config, optFns ...Option) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}

	s := &Server{
		store:  store,
		cfg:    cfg,
		logger: vecdb.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /vector", s.handleInsert)
	mux.HandleFunc("GET /vector/{id}", s.handleGet)
	mux.HandleFunc("DELETE /vector/{id}", s.handleDelete)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /stats", s.handleStats)

	var h http.Handler = mux
	if cfg.Gzip {
		h = gzhttp.GzipHandler(h)
	}
	h = s.admit(h)
	h = s.requestLog(h)
	s.handler = h

	return s
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. In-flight requests get
// ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("server listening", "addr", ln.Addr().String(), "dimension", s.store.Dimension())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
