package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/cagmock/cagmock/pkg/config"
	"github.com/cagmock/cagmock/pkg/dataset"
	"github.com/cagmock/cagmock/pkg/logging"
	"github.com/cagmock/cagmock/pkg/metrics"
	"github.com/cagmock/cagmock/pkg/validation"
)

// ErrAlreadyStarted is returned by Start on a running server.
var ErrAlreadyStarted = errors.New("server already started")

// Server is the CAG mock HTTP server.
type Server struct {
	store     *dataset.Store
	cfg       *config.Config
	metrics   *metrics.Metrics
	validator *validation.RequestValidator
	log       *slog.Logger

	doc     *openapi3.T
	docJSON []byte
	docYAML []byte

	handler    http.Handler
	httpServer *http.Server
	startedAt  time.Time

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics replaces the server's metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewServer builds the OpenAPI document, the route mux and the middleware
// chain. A nil cfg means config.Default().
func NewServer(store *dataset.Store, cfg *config.Config, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		store:     store,
		cfg:       cfg,
		log:       logging.Nop(),
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.metrics.TrackDataset(store.Stats)

	doc, err := NewDocument(cfg.Server.BaseURL())
	if err != nil {
		return nil, err
	}
	s.doc = doc
	if s.docJSON, s.docYAML, err = MarshalDocument(doc); err != nil {
		return nil, err
	}

	if cfg.Validation.Requests {
		if s.validator, err = validation.NewRequestValidator(doc); err != nil {
			return nil, fmt.Errorf("failed to create request validator: %w", err)
		}
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withMiddleware(mux)

	s.httpServer = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.handler,
		ReadTimeout:       cfg.Server.ReadTimeoutDuration(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeoutDuration(),
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	return s, nil
}

// Handler returns the full middleware-wrapped handler, for httptest.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Document returns the OpenAPI document served at /api-docs.json.
func (s *Server) Document() *openapi3.T {
	return s.doc
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Start binds the listen address and serves in the background. Bind errors
// are returned synchronously.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	s.done = make(chan struct{})
	s.startedAt = time.Now()

	s.log.Info("starting CAG mock API",
		"addr", ln.Addr().String(),
		"docs", s.cfg.Server.BaseURL()+"/api-docs",
		"requestValidation", s.validator != nil,
	)
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("API server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Stop drains in-flight requests and waits for the serve loop to exit.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.log.Info("CAG mock API stopped")
	return nil
}
