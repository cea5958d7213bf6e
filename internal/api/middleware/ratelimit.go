package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"risk-dashboard/internal/config"

	"github.com/redis/go-redis/v9"
)

const rateLimitExceededMsg = "Rate limit exceeded"

// RateLimiter is owned by whoever builds it; Close releases background work
// and must be called once the server has stopped.
type RateLimiter interface {
	Middleware(next http.Handler) http.Handler
	Close()
}

// NewRateLimiter shares limits across replicas through Redis when a client is
// given and falls back to per-process token buckets otherwise.
func NewRateLimiter(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) RateLimiter {
	if redisClient != nil {
		return NewRedisRateLimiterMiddleware(cfg, redisClient, logger)
	}
	return NewRateLimiterMiddleware(cfg, logger)
}

func extractIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		ip := strings.TrimSpace(ips[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	xRealIP := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return ip
	}
	if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
		return parsed.String()
	}
	return "unknown"
}

func writeRateLimited(w http.ResponseWriter, retryAfter string) {
	w.Header().Set("Content-Type", "application/json")
	if retryAfter != "" {
		w.Header().Set("Retry-After", retryAfter)
	}
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": rateLimitExceededMsg})
}
