package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "CAGMOCK_"

// Config is the complete server configuration.
type Config struct {
	Server     ServerConfig     `json:"server" yaml:"server" envPrefix:"SERVER_"`
	Log        LogConfig        `json:"log" yaml:"log" envPrefix:"LOG_"`
	CORS       CORSConfig       `json:"cors" yaml:"cors" envPrefix:"CORS_"`
	Pagination PaginationConfig `json:"pagination" yaml:"pagination" envPrefix:"PAGINATION_"`
	Seed       SeedConfig       `json:"seed" yaml:"seed" envPrefix:"SEED_"`
	Validation ValidationConfig `json:"validation" yaml:"validation" envPrefix:"VALIDATION_"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `json:"host" yaml:"host" env:"HOST"`
	Port int    `json:"port" yaml:"port" env:"PORT"`
	// ReadTimeout and WriteTimeout are in seconds; 0 disables the timeout.
	ReadTimeout  int   `json:"readTimeout" yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout int   `json:"writeTimeout" yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	MaxBodyBytes int64 `json:"maxBodyBytes" yaml:"maxBodyBytes" env:"MAX_BODY_BYTES"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVEL"`
	Format string `json:"format" yaml:"format" env:"FORMAT"`
}

// CORSConfig configures cross-origin access. The default admits every origin
// so a frontend dev server on any port can call the mock.
type CORSConfig struct {
	Enabled          bool     `json:"enabled" yaml:"enabled" env:"ENABLED"`
	AllowOrigins     []string `json:"allowOrigins" yaml:"allowOrigins" env:"ALLOW_ORIGINS" envSeparator:","`
	AllowMethods     []string `json:"allowMethods" yaml:"allowMethods" env:"ALLOW_METHODS" envSeparator:","`
	AllowHeaders     []string `json:"allowHeaders" yaml:"allowHeaders" env:"ALLOW_HEADERS" envSeparator:","`
	AllowCredentials bool     `json:"allowCredentials" yaml:"allowCredentials" env:"ALLOW_CREDENTIALS"`
	MaxAge           int      `json:"maxAge" yaml:"maxAge" env:"MAX_AGE"`
}

// PaginationConfig configures list endpoints.
type PaginationConfig struct {
	DefaultSize int `json:"defaultSize" yaml:"defaultSize" env:"DEFAULT_SIZE"`
}

// SeedConfig selects the dataset loaded at start-up. An empty File means the
// built-in seed.
type SeedConfig struct {
	File string `json:"file" yaml:"file" env:"FILE"`
}

// ValidationConfig toggles OpenAPI request validation.
type ValidationConfig struct {
	Requests bool `json:"requests" yaml:"requests" env:"REQUESTS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			Enabled:      true,
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
			MaxAge:       86400,
		},
		Pagination: PaginationConfig{
			DefaultSize: 10,
		},
	}
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ReadTimeoutDuration converts ReadTimeout to a time.Duration.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration converts WriteTimeout to a time.Duration.
func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// BaseURL is the URL advertised in the OpenAPI servers list.
func (s ServerConfig) BaseURL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s", net.JoinHostPort(host, strconv.Itoa(s.Port)))
}

// IsWildcard reports whether any origin is allowed.
func (c CORSConfig) IsWildcard() bool {
	for _, o := range c.AllowOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
