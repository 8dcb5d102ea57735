package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	applogger "github.com/contactkeeper/contacts-api/app/logger"
)

// RequestIDTracing echoes the chi request ID in the response and attaches a
// logger carrying it to the request context for downstream layers.
func RequestIDTracing() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := middleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			log := applogger.WithRequestID(requestID)
			ctx := log.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
