package metrics

import (
	"net/http"
	"time"

	"github.com/cagmock/cagmock/pkg/httputil"
)

// Instrument wraps next and observes every request it serves. The route label
// is read from Request.Pattern, which ServeMux fills in on the request it is
// handed, so every layer between here and the mux must pass r through as is.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httputil.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)
		m.ObserveRequest(r.Method, r.Pattern, rec.Status, time.Since(start))
	})
}
