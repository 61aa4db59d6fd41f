package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
)

type routeKey struct{}

// routeCapture receives the route template once the router has matched the
// request. Stages above the router never see mux's route in their own
// request, so the router reports it back through the context.
type routeCapture struct {
	path string
}

func (c *routeCapture) template() string {
	if c.path == "" {
		return "unmatched"
	}
	return c.path
}

func withRouteCapture(ctx context.Context, c *routeCapture) context.Context {
	return context.WithValue(ctx, routeKey{}, c)
}

// CaptureRoute must be installed with Router.Use so that Metrics can label
// requests by route template.
func CaptureRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := r.Context().Value(routeKey{}).(*routeCapture); ok {
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					c.path = tmpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
