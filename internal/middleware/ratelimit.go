package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/AnshRaj112/mentracare-backend/pkg/clientip"
)

const (
	// RateLimitWindow is the fixed window length.
	RateLimitWindow = 120 * time.Second
	// RateLimitMaxRequests is the number of requests allowed per IP per window.
	RateLimitMaxRequests = 120
	// RateLimitKeyPrefix is the Redis key prefix for rate limiting
	RateLimitKeyPrefix = "mentracare:ratelimit:"
)

// RedisRateLimit is a fixed-window per-IP limiter shared across instances.
// Any Redis error lets the request through.
func RedisRateLimit(client *redis.Client, maxRequests int, window time.Duration, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := RateLimitKeyPrefix + clientip.RealClientIP(r)

			n, err := client.Incr(ctx, key).Result()
			if err != nil {
				log.WithError(err).Debug("redis rate limit unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if n == 1 {
				// First request of the window starts the clock.
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					log.WithError(err).Debug("redis rate limit expire failed")
				}
			}

			count := int(n)
			remaining := maxRequests - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if count > maxRequests {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(window.Seconds()))))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
