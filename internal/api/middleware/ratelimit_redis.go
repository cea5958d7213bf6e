package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"risk-dashboard/internal/config"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiterMiddleware is a fixed one-second window counter per client
// IP. Redis failures let the request through.
type RedisRateLimiterMiddleware struct {
	redisClient *redis.Client
	cfg         config.RateLimitConfig
	logger      *slog.Logger
	window      time.Duration
}

func NewRedisRateLimiterMiddleware(
	cfg config.RateLimitConfig,
	redisClient *redis.Client,
	logger *slog.Logger,
) *RedisRateLimiterMiddleware {
	logger = logger.With("component", "RedisRateLimiter")

	if !cfg.Enabled {
		logger.Info("Rate limiting is disabled via configuration.")
	} else if redisClient == nil {
		logger.Warn("Rate limiting enabled but no Redis client provided; disabling.")
		cfg.Enabled = false
	} else {
		logger.Info("Rate limiter middleware configured", "rps", cfg.RPS, "window", 1*time.Second)
	}

	return &RedisRateLimiterMiddleware{
		redisClient: redisClient,
		cfg:         cfg,
		logger:      logger,
		window:      1 * time.Second,
	}
}

// Close is a no-op. The Redis client belongs to the caller.
func (rl *RedisRateLimiterMiddleware) Close() {}

func (rl *RedisRateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.redisClient != nil
}

func (rl *RedisRateLimiterMiddleware) limit() int64 {
	limit := int64(rl.cfg.RPS)
	if limit < 1 {
		limit = 1
	}
	return limit
}

func (rl *RedisRateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r)
		ctx := r.Context()
		key := fmt.Sprintf("ratelimit:%s", ip)

		pipe := rl.redisClient.Pipeline()
		incrCmd := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)

		if _, err := pipe.Exec(ctx); err != nil {
			rl.logger.Error("Redis pipeline failed during rate limiting check", "error", err, "ip", ip, "key", key)
			next.ServeHTTP(w, r)
			return
		}

		currentCount, err := incrCmd.Result()
		if err != nil {
			rl.logger.Error("Failed to get INCR result after pipeline exec", "error", err, "ip", ip, "key", key)
			next.ServeHTTP(w, r)
			return
		}

		if ttl, err := ttlCmd.Result(); err == nil && ttl < 0 {
			if err := rl.redisClient.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.logger.Error("Failed to set Redis EXPIRE for rate limit key", "error", err, "ip", ip, "key", key)
			}
		}

		if currentCount > rl.limit() {
			rl.logger.Warn("Rate limit exceeded", "ip", ip, "count", currentCount, "limit", rl.limit())
			writeRateLimited(w, fmt.Sprintf("%.0f", rl.window.Seconds()))
			return
		}

		next.ServeHTTP(w, r)
	})
}
