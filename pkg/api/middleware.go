package api

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/cors"

	"github.com/cagmock/cagmock/internal/id"
	"github.com/cagmock/cagmock/pkg/config"
	"github.com/cagmock/cagmock/pkg/httputil"
	"github.com/cagmock/cagmock/pkg/validation"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-supplied request ids.
const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// withMiddleware builds the handler chain, outermost first: recovery, request
// id, access log, metrics, CORS, request validation.
func (s *Server) withMiddleware(mux http.Handler) http.Handler {
	h := mux
	if s.validator != nil {
		h = validation.NewMiddleware(h, s.validator, s.log)
	}
	h = corsHandler(s.cfg.CORS, h)
	h = s.metrics.Instrument(h)
	h = s.accessLog(h)
	h = requestID(h)
	h = s.recovery(h)
	return h
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := httputil.NewStatusRecorder(w)
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			s.log.Error("panic serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", v,
				"stack", string(debug.Stack()),
			)
			if !rec.WroteHeader() {
				httputil.WriteInternalError(rec, "internal server error")
			}
		}()
		next.ServeHTTP(rec, r)
	})
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" || len(reqID) > maxRequestIDLength {
			reqID = id.UUID()
		}
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httputil.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", r.Pattern,
			"status", rec.Status,
			"bytes", rec.Bytes,
			"duration", time.Since(start),
			"requestId", RequestIDFromContext(r.Context()),
		)
	})
}

// corsHandler wraps next with rs/cors. A disabled config returns next.
func corsHandler(cfg config.CORSConfig, next http.Handler) http.Handler {
	if !cfg.Enabled {
		return next
	}
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowOrigins,
		AllowedMethods:   cfg.AllowMethods,
		AllowedHeaders:   cfg.AllowHeaders,
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}).Handler(next)
}
