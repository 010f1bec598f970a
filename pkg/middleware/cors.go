package middleware

import (
	"net/http"
	"slices"

	"resourcebook/pkg/logger"

	"github.com/rs/cors"
)

// CORS answers preflight requests and decorates responses for the allowed
// origins. "*" allows any origin.
func CORS(allowedOrigins []string, log *logger.Logger) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Idempotency-Key", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: !slices.Contains(allowedOrigins, "*"),
		MaxAge:           600,
	})

	log.Info("CORS configured", "allowed_origins", allowedOrigins)
	return c.Handler
}
