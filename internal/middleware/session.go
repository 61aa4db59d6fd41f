package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/R3E-Network/petstore/internal/logging"
)

// SessionCookie names the cookie holding the shopper session id.
const SessionCookie = "petstore_session"

// Sessions makes sure each browser carries a session id and exposes it
// through logging.GetSessionID. Unknown or malformed ids are replaced.
func Sessions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				sessionID = id.String()
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(logging.WithSessionID(r.Context(), sessionID)))
	})
}
