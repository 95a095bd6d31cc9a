package middleware

import (
	"github.com/rs/cors"

	"github.com/cours-de-latin/conjug/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests. It returns nil when no origin is
// allowed, so the API only answers same-origin callers.
func CORS(cfg config.CORSConfig) Middleware {
	if len(cfg.Origins()) == 0 {
		return nil
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return c.Handler
}
