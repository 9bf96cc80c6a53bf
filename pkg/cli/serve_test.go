package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cagmock/cagmock/pkg/config"
	"github.com/cagmock/cagmock/pkg/dataset"
	"github.com/cagmock/cagmock/pkg/logging"
)

// newTestServeCmd returns a fresh serve command with its own flag values so
// tests do not share state through serveFlagVals.
func newTestServeCmd(t *testing.T, args ...string) (*cobra.Command, *serveFlags) {
	t.Helper()
	f := &serveFlags{}
	defaults := config.Default()
	cmd := &cobra.Command{Use: "serve"}
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "")
	cmd.Flags().StringSliceVar(&f.envFiles, "env-file", nil, "")
	cmd.Flags().StringVar(&f.host, "host", defaults.Server.Host, "")
	cmd.Flags().IntVarP(&f.port, "port", "p", defaults.Server.Port, "")
	cmd.Flags().IntVar(&f.readTimeout, "read-timeout", defaults.Server.ReadTimeout, "")
	cmd.Flags().IntVar(&f.writeTimeout, "write-timeout", defaults.Server.WriteTimeout, "")
	cmd.Flags().Int64Var(&f.maxBodyBytes, "max-body-bytes", defaults.Server.MaxBodyBytes, "")
	cmd.Flags().StringVar(&f.logLevel, "log-level", defaults.Log.Level, "")
	cmd.Flags().StringVar(&f.logFormat, "log-format", defaults.Log.Format, "")
	cmd.Flags().StringVar(&f.seedFile, "seed", "", "")
	cmd.Flags().IntVar(&f.pageSize, "page-size", defaults.Pagination.DefaultSize, "")
	cmd.Flags().StringSliceVar(&f.corsOrigins, "cors-origins", defaults.CORS.AllowOrigins, "")
	cmd.Flags().BoolVar(&f.noCORS, "no-cors", false, "")
	cmd.Flags().BoolVar(&f.validateRequests, "validate-requests", false, "")
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, f
}

func TestServeCmd_FlagsRegistered(t *testing.T) {
	for _, name := range []string{
		"config", "env-file", "host", "port", "read-timeout", "write-timeout", "max-body-bytes",
		"log-level", "log-format", "seed", "page-size", "cors-origins", "no-cors", "validate-requests",
	} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "p", serveCmd.Flags().Lookup("port").Shorthand)
}

func TestResolveServeConfig_Defaults(t *testing.T) {
	cmd, f := newTestServeCmd(t)

	cfg, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveServeConfig_FlagsOverrideEnvironment(t *testing.T) {
	cmd, f := newTestServeCmd(t, "--port", "3000", "--cors-origins", "http://localhost:5173", "--validate-requests")

	cfg, err := resolveServeConfig(cmd.Flags(), f, map[string]string{
		"CAGMOCK_SERVER_PORT":             "9000",
		"CAGMOCK_PAGINATION_DEFAULT_SIZE": "25",
		"CAGMOCK_LOG_LEVEL":               "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Pagination.DefaultSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.Validation.Requests)
}

func TestResolveServeConfig_UnchangedFlagsKeepFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cagmock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\nlog:\n  format: json\n"), 0o600))

	cmd, f := newTestServeCmd(t, "--config", path, "--log-level", "warn")

	cfg, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestResolveServeConfig_FlagFixesFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cagmock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 70000\nlog:\n  level: loud\n"), 0o600))

	cmd, f := newTestServeCmd(t, "--config", path, "--port", "8081", "--log-level", "info")

	cfg, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestResolveServeConfig_InvalidFileValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cagmock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))

	cmd, f := newTestServeCmd(t, "--config", path)

	_, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestResolveServeConfig_NoCORS(t *testing.T) {
	cmd, f := newTestServeCmd(t, "--no-cors")

	cfg, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.NoError(t, err)
	assert.False(t, cfg.CORS.Enabled)
}

func TestResolveServeConfig_InvalidFlag(t *testing.T) {
	cmd, f := newTestServeCmd(t, "--port", "70000")

	_, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestResolveServeConfig_MissingConfigFile(t *testing.T) {
	cmd, f := newTestServeCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := resolveServeConfig(cmd.Flags(), f, map[string]string{})
	assert.ErrorIs(t, err, config.ErrFileNotFound)
}

func TestLoadSeed(t *testing.T) {
	d, err := loadSeed("")
	require.NoError(t, err)
	assert.Equal(t, 5, d.Stats().AssignedCAGs)

	_, err = loadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, dataset.ErrSeedNotFound)
}

func TestNewServer_ServesSeed(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.Default()
	log := logging.FromStrings("info", "text", &logs)

	srv, err := newServer(cfg, log)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/clients/activeClientList", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "clientList")

	assert.Contains(t, logs.String(), "dataset loaded")
	assert.Contains(t, logs.String(), "seed=built-in")
}

func TestNewServer_BadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clients": "nope"}`), 0o600))

	cfg := config.Default()
	cfg.Seed.File = path

	_, err := newServer(cfg, logging.Nop())
	assert.ErrorIs(t, err, dataset.ErrInvalidSeed)
}

func TestPrintServeBanner(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Server.Port = 3000

	printServeBanner(&buf, cfg, "[::]:3000")

	out := buf.String()
	assert.Contains(t, out, "listening on [::]:3000")
	assert.Contains(t, out, "http://localhost:3000/api-docs")
	assert.Contains(t, out, "http://localhost:3000/metrics")
}
