package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Errors returned while loading configuration.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an optional YAML or JSON config file.
	File string
	// DotEnv lists .env files to load; missing files are skipped.
	DotEnv []string
	// Environment replaces the process environment when non-nil. Tests use it.
	Environment map[string]string
}

// Load assembles the configuration from defaults, File, DotEnv and the
// environment. The result is not validated; callers apply their own overrides
// first and then call Validate.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return nil, err
		}
	}

	if opts.Environment == nil {
		if err := LoadDotEnv(opts.DotEnv...); err != nil {
			return nil, err
		}
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
	} else {
		if err := ApplyEnvFrom(cfg, opts.Environment); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile reads path over Default() without consulting the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("%w in %s: %v", ErrInvalidJSON, path, err)
		}
	}
	return nil
}

// LoadDotEnv exports the variables of each existing file into the process
// environment. Variables already set are left alone.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays CAGMOCK_* variables from the process environment.
func ApplyEnv(c *Config) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// ApplyEnvFrom overlays CAGMOCK_* variables taken from environ.
func ApplyEnvFrom(c *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
