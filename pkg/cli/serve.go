package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cagmock/cagmock/pkg/api"
	"github.com/cagmock/cagmock/pkg/config"
	"github.com/cagmock/cagmock/pkg/dataset"
	"github.com/cagmock/cagmock/pkg/logging"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// serveFlags holds the serve command flag values. Only flags the user set
// override the loaded configuration.
type serveFlags struct {
	configFile string
	envFiles   []string

	host         string
	port         int
	readTimeout  int
	writeTimeout int
	maxBodyBytes int64

	logLevel  string
	logFormat string

	seedFile         string
	pageSize         int
	corsOrigins      []string
	noCORS           bool
	validateRequests bool
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CAG mock API (foreground)",
	Long: `Start the CAG mock API in the foreground. The dataset lives in memory and is
rebuilt from the seed on every start; POST /__admin/reset restores it at runtime.

Interactive documentation is served at /api-docs and the raw OpenAPI document at
/api-docs.json and /api-docs.yaml. Prometheus metrics are exposed at /metrics.`,
	Example: `  # Start with defaults on port 8080
  cagmock serve

  # Custom port and seed file
  cagmock serve --port 3000 --seed ./seed.yaml

  # JSON logs, strict OpenAPI request validation
  cagmock serve --log-format json --validate-requests

  # Only allow the local frontend
  cagmock serve --cors-origins http://localhost:5173`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, &serveFlagVals)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	defaults := config.Default()

	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to YAML or JSON configuration file")
	serveCmd.Flags().StringSliceVar(&f.envFiles, "env-file", []string{".env"}, "Dotenv files to load (missing files are skipped)")

	serveCmd.Flags().StringVar(&f.host, "host", defaults.Server.Host, "Interface to bind (empty = all)")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", defaults.Server.Port, "HTTP server port")
	serveCmd.Flags().IntVar(&f.readTimeout, "read-timeout", defaults.Server.ReadTimeout, "Read timeout in seconds")
	serveCmd.Flags().IntVar(&f.writeTimeout, "write-timeout", defaults.Server.WriteTimeout, "Write timeout in seconds")
	serveCmd.Flags().Int64Var(&f.maxBodyBytes, "max-body-bytes", defaults.Server.MaxBodyBytes, "Maximum request body size in bytes")

	serveCmd.Flags().StringVar(&f.logLevel, "log-level", defaults.Log.Level, "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", defaults.Log.Format, "Log format (text, json)")

	serveCmd.Flags().StringVar(&f.seedFile, "seed", "", "Seed dataset file, YAML or JSON (default: built-in seed)")
	serveCmd.Flags().IntVar(&f.pageSize, "page-size", defaults.Pagination.DefaultSize, "Default page size for assigned CAG listing")
	serveCmd.Flags().StringSliceVar(&f.corsOrigins, "cors-origins", defaults.CORS.AllowOrigins, "Allowed CORS origins")
	serveCmd.Flags().BoolVar(&f.noCORS, "no-cors", false, "Disable CORS handling")
	serveCmd.Flags().BoolVar(&f.validateRequests, "validate-requests", defaults.Validation.Requests, "Validate requests against the OpenAPI document")
}

func init() {
	initServeCmd()
}

// resolveServeConfig loads the layered configuration and applies every flag
// the user set explicitly. env replaces the process environment when non-nil.
func resolveServeConfig(flags *pflag.FlagSet, f *serveFlags, env map[string]string) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:        f.configFile,
		DotEnv:      f.envFiles,
		Environment: env,
	})
	if err != nil {
		return nil, err
	}

	if flags.Changed("host") {
		cfg.Server.Host = f.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = f.port
	}
	if flags.Changed("read-timeout") {
		cfg.Server.ReadTimeout = f.readTimeout
	}
	if flags.Changed("write-timeout") {
		cfg.Server.WriteTimeout = f.writeTimeout
	}
	if flags.Changed("max-body-bytes") {
		cfg.Server.MaxBodyBytes = f.maxBodyBytes
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if flags.Changed("seed") {
		cfg.Seed.File = f.seedFile
	}
	if flags.Changed("page-size") {
		cfg.Pagination.DefaultSize = f.pageSize
	}
	if flags.Changed("cors-origins") {
		cfg.CORS.AllowOrigins = f.corsOrigins
	}
	if f.noCORS {
		cfg.CORS.Enabled = false
	}
	if flags.Changed("validate-requests") {
		cfg.Validation.Requests = f.validateRequests
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSeed returns the dataset named by path, or the built-in seed.
func loadSeed(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.DefaultSeed(), nil
	}
	return dataset.LoadSeedFile(path)
}

// newServer wires the store and API server for cfg.
func newServer(cfg *config.Config, log *slog.Logger) (*api.Server, error) {
	seed, err := loadSeed(cfg.Seed.File)
	if err != nil {
		return nil, err
	}

	store, err := dataset.NewStore(seed, dataset.WithLogger(logging.Component(log, "dataset")))
	if err != nil {
		return nil, err
	}

	stats := store.Stats()
	log.Info("dataset loaded",
		"seed", seedName(cfg.Seed.File),
		"clients", stats.Clients,
		"contracts", stats.Contracts,
		"operationUnits", stats.OperationUnits,
		"assignedCAGs", stats.AssignedCAGs,
		"cagMappings", stats.CAGMappings,
	)

	return api.NewServer(store, cfg, api.WithLogger(logging.Component(log, "api")))
}

func seedName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := resolveServeConfig(cmd.Flags(), f, nil)
	if err != nil {
		return err
	}

	log := newLogger(cfg, cmd.ErrOrStderr())

	srv, err := newServer(cfg, log)
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printServeBanner(out, cfg, srv.Addr())

	return runMainLoop(out, srv)
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return logging.FromStrings(cfg.Log.Level, cfg.Log.Format, w)
}

func printServeBanner(w io.Writer, cfg *config.Config, addr string) {
	base := cfg.Server.BaseURL()
	fmt.Fprintf(w, "CAG mock API listening on %s\n", addr)
	fmt.Fprintf(w, "  API docs:   %s/api-docs\n", base)
	fmt.Fprintf(w, "  Health:     %s/health\n", base)
	fmt.Fprintf(w, "  Metrics:    %s/metrics\n", base)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
}

// runMainLoop blocks until SIGINT or SIGTERM, then shuts the server down.
func runMainLoop(w io.Writer, srv *api.Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	<-sigChan
	fmt.Fprintln(w, "\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	fmt.Fprintln(w, "Server stopped")
	return nil
}
