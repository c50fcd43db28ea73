package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware answers preflight requests and sets CORS headers for the
// given origins. "*" allows any origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", TokenHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}
