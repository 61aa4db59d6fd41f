// Package middleware provides the HTTP stages composed around the router.
package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/R3E-Network/petstore/internal/app/metrics"
)

// Metrics records Prometheus metrics for each request. Paths are labelled
// with the matched route template so item numbers do not explode the label
// set; unmatched requests are labelled "unmatched". A request whose handler
// panics is still counted, with status 500.
func Metrics() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			done := metrics.RequestStarted(r.Method)

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			route := &routeCapture{}
			completed := false
			defer func() {
				status := wrapped.statusCode
				if !completed {
					status = http.StatusInternalServerError
				}
				done(route.template(), status)
			}()

			next.ServeHTTP(wrapped, r.WithContext(withRouteCapture(r.Context(), route)))
			completed = true
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
