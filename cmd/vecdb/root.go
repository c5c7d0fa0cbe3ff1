package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hupe1980/vecdb"
	"github.com/hupe1980/vecdb/config"
	"github.com/hupe1980/vecdb/resource"
	"github.com/hupe1980/vecdb/server"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type serveFlags struct {
	configFile string
	envFile    string
	addr       string
	dimension  int
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vecdb",
		Short:         "In-memory cosine similarity vector store",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersion(),
	}

	root.AddCommand(newServeCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "vecdb %s\n", buildVersion())
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the vecdb HTTP server.

Configuration is read from the YAML file given by --config, then overridden by
VECDB_* environment variables (a .env file is loaded if present) and finally by
command-line flags.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", "path to YAML config file")
	flags.StringVar(&f.envFile, "env-file", ".env", "path to .env file")
	flags.StringVar(&f.addr, "addr", "", "listen address (overrides config)")
	flags.IntVar(&f.dimension, "dimension", 0, "embedding dimension (overrides config)")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&f.logFormat, "log-format", "", "log format: text or json")

	return cmd
}

// loadConfig merges file, environment and flags, in that order.
func loadConfig(cmd *cobra.Command, f serveFlags) (*config.Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load(f.envFile)

	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if flags.Changed("dimension") {
		cfg.Store.Dimension = f.dimension
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*vecdb.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Log.Format, "json") {
		return vecdb.NewJSONLogger(level), nil
	}
	return vecdb.NewTextLogger(level), nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	mc := &vecdb.BasicMetricsCollector{}
	store, err := vecdb.New(cfg.Store.Dimension,
		vecdb.WithLogger(logger),
		vecdb.WithMetricsCollector(mc),
		vecdb.WithSearchWorkers(cfg.Store.SearchWorkers),
		vecdb.WithParallelThreshold(cfg.Store.ParallelThreshold),
	)
	if err != nil {
		return err
	}

	ctrl := resource.NewController(resource.Config{
		RequestsPerSecond:     cfg.Limits.RequestsPerSecond,
		Burst:                 cfg.Limits.Burst,
		MaxConcurrentSearches: cfg.Limits.MaxConcurrentSearches,
	})

	srv := server.New(store, server.Config{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MaxBodyBytes:    cfg.Server.MaxBodyBytes,
		Gzip:            cfg.Server.Gzip,
	},
		server.WithLogger(logger),
		server.WithController(ctrl),
		server.WithMetrics(mc),
	)

	return srv.ListenAndServe(ctx)
}
