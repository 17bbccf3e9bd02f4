package middleware

import (
	"net/http"
	"os"
	"strconv"
)

const defaultPreflightMaxAge = 86400

// NewCORSMiddleware opens the catalog to browser clients on any origin.
// Credentials are never allowed: authentication travels in the Authorization
// header, not in cookies, so there is no reason to echo origins or opt into
// credentialed requests.
func NewCORSMiddleware() func(http.Handler) http.Handler {
	maxAge := strconv.Itoa(preflightMaxAge())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			headers.Set("Access-Control-Allow-Origin", "*")
			headers.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin")
			headers.Set("Access-Control-Max-Age", maxAge)

			// Preflight requests stop here
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// preflightMaxAge reads CORS_MAX_AGE, falling back to the default when the
// variable is unset or not a non-negative number of seconds
func preflightMaxAge() int {
	value := os.Getenv("CORS_MAX_AGE")
	if value == "" {
		return defaultPreflightMaxAge
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return defaultPreflightMaxAge
	}
	return seconds
}
