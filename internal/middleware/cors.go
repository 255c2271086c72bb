package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// NewCORS lets the mobile and web clients call the API. Cookies are only
// allowed for an explicit origin list; "*" or an empty list allows any
// origin with bearer tokens only.
func NewCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	if wildcard {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: !wildcard,
		MaxAge:           600,
	}).Handler
}
