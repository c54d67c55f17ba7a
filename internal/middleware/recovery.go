// File: internal/middleware/recovery.go
package middleware

import (
	"net/http"

	"github.com/aimedica/go-diagnosis/internal/services"
)

// RecoverPanic converts handler panics into 500 responses.
func RecoverPanic(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("handler panicked", "uri", r.RequestURI, "panic", err)
					w.Header().Set("Connection", "close")
					http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
