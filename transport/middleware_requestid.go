package transport

import (
	"net/http"

	"github.com/google/uuid"
	utilsContext "github.com/muhammadheryan/user-dashboard/utils/context"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a new one,
// echoing it on the response and storing it in the request context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(utilsContext.WithRequestID(r.Context(), id)))
	})
}
