package transport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	utilsContext "github.com/muhammadheryan/user-dashboard/utils/context"
)

const defaultSessionCookie = "dashboard_sid"

// SessionMiddleware gives every browser a random session id cookie. The id only
// scopes the flash slot, so an unknown or malformed cookie is replaced.
func SessionMiddleware(cookieName string, secure bool, maxAge time.Duration) mux.MiddlewareFunc {
	if cookieName == "" {
		cookieName = defaultSessionCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithSessionID(r.Context(), sessionID)))
		})
	}
}
