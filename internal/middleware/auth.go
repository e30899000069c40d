package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/config"
)

// APIKeyAuth middleware validates the API key passed in the "api_key" header.
// With no keys configured every request passes.
func APIKeyAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(cfg.APIKeys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				writeJSONError(w, http.StatusUnauthorized, "Unauthorized: API key required")
				return
			}

			valid := false
			for _, validKey := range cfg.APIKeys {
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(validKey)) == 1 {
					valid = true
					break
				}
			}

			if !valid {
				writeJSONError(w, http.StatusForbidden, "Forbidden: Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
