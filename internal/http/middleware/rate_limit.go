package middleware

import (
	"net"
	"net/http"

	rl "github.com/rogerio-castellano/umkm-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/umkm-inventory/internal/logger"
)

// RateLimit rejects a client with 429 once its token bucket is empty.
func RateLimit(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.GetVisitor(ip).Allow() {
				logg.Warn(logg.WithField(r.Context(), "client_ip", ip), "rate limit exceeded")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
