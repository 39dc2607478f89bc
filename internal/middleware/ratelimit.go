package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed window per client IP using Redis INCR+EXPIRE,
// so the limit holds across multiple backend instances. If Redis is
// unreachable the request is allowed through.
type RateLimiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s:%s", rl.prefix, r.RemoteAddr)

		count, err := rl.redis.Incr(r.Context(), key).Result()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			rl.redis.Expire(r.Context(), key, rl.window)
		}

		if count > int64(rl.limit) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
