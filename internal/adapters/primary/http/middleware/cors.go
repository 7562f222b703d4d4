package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns a middleware that answers preflight requests and sets
// Access-Control-* headers for the given origins.
func CORS(allowedOrigins []string, maxAge int) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           maxAge,
	})
}
