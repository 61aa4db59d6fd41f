package middleware

import (
	"net/http"
	"time"
)

// ServerHeaders stamps every response with the Server and Date headers.
func ServerHeaders(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", name)
			w.Header().Set("Date", time.Now().UTC().Format(http.TimeFormat))
			next.ServeHTTP(w, r)
		})
	}
}

// MethodOverrideField is the form field carrying the intended method.
const MethodOverrideField = "_method"

// MethodOverride lets HTML forms, which can only POST, issue PUT, PATCH and
// DELETE requests through a hidden _method field.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch method := r.PostFormValue(MethodOverrideField); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
