package validation

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cagmock/cagmock/pkg/httputil"
	"github.com/cagmock/cagmock/pkg/logging"
)

// Middleware rejects requests that fail validation with a 400.
type Middleware struct {
	handler   http.Handler
	validator *RequestValidator
	log       *slog.Logger
}

// NewMiddleware wraps handler. A nil validator disables validation.
func NewMiddleware(handler http.Handler, validator *RequestValidator, log *slog.Logger) *Middleware {
	if log == nil {
		log = logging.Nop()
	}
	return &Middleware{handler: handler, validator: validator, log: log}
}

// ServeHTTP implements http.Handler.
func (m *Middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.validator == nil {
		m.handler.ServeHTTP(w, r)
		return
	}

	result := m.validator.ValidateRequest(r)
	if result.Valid {
		m.handler.ServeHTTP(w, r)
		return
	}

	first := result.First()
	m.log.Debug("request rejected by validation",
		"method", r.Method,
		"path", r.URL.Path,
		"errors", len(result.Errors),
		"first", first.Error(),
	)

	body := httputil.ErrorBody{Error: first.Message, Field: first.Field}
	if n := len(result.Errors) - 1; n > 0 {
		body.Hint = fmt.Sprintf("%d more validation error(s)", n)
	}
	httputil.WriteError(w, http.StatusBadRequest, body)
}
