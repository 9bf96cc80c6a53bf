package config

import (
	"errors"
	"fmt"

	"github.com/cagmock/cagmock/pkg/httputil"
	"github.com/cagmock/cagmock/pkg/logging"
)

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range 0-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, errors.New("server.readTimeout cannot be negative"))
	}
	if c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server.writeTimeout cannot be negative"))
	}
	if c.Server.MaxBodyBytes < 0 {
		errs = append(errs, errors.New("server.maxBodyBytes cannot be negative"))
	}
	if c.Server.MaxBodyBytes > httputil.MaxBodyBytesLimit {
		errs = append(errs, fmt.Errorf("server.maxBodyBytes %d exceeds the limit of %d", c.Server.MaxBodyBytes, httputil.MaxBodyBytesLimit))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", c.Log.Format))
	}
	if c.Pagination.DefaultSize < 0 {
		errs = append(errs, errors.New("pagination.defaultSize cannot be negative"))
	}
	if c.CORS.MaxAge < 0 {
		errs = append(errs, errors.New("cors.maxAge cannot be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
