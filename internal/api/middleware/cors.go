package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS разрешает браузерные запросы с перечисленных origin
// X-User-ID должен быть в AllowedHeaders, иначе preflight не пропустит защищённые маршруты
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", HeaderUserID},
		ExposedHeaders: []string{"Content-Length", "Retry-After"},
	})
	return c.Handler
}
