// File: internal/middleware/ratelimit.go
package middleware

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aimedica/go-diagnosis/internal/ratelimit"
	"github.com/aimedica/go-diagnosis/internal/services"
)

// RateLimit throttles a route group through the given limiter, keyed
// by client IP. Blocked requests get a 429 with standard rate-limit
// headers.
func RateLimit(limiter *ratelimit.Limiter, logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.ClientIP(r)
			allowed, info := limiter.Allow(clientIP)

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetAt.Unix(), 10))

			if !allowed {
				logger.Warn("inference request throttled",
					"remote", clientIP, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"error":      "Too many requests. Please try again later.",
					"retryAfter": int(info.RetryAfter.Seconds()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
