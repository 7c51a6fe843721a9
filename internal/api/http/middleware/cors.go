package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// CORS разрешает запросы фронтенда с указанных origins (через запятую)
func CORS(allowedOrigins string, maxAge int) func(http.Handler) http.Handler {
	origins := strings.Split(allowedOrigins, ",")
	// Убираем пробелы из origins
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Requested-With",
			"X-Request-Id",
		},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
	return c.Handler
}
