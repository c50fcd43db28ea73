package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
)

// RateLimitByIP limits each client IP to requests per window. Requests over
// the limit get 429 with a JSON message.
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyByIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			observability.LoggerFromContext(r.Context()).Warn().
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Msg("rate limit exceeded")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"message": "Too many requests, please try again later.",
			})
		}),
	)
}
