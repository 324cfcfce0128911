package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/gin-gonic/gin"
)

type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

type RateLimiter struct {
	log     logger.Log
	counter RateCounter
}

// NewRateLimiter returns a limiter backed by counter. A nil counter disables
// limiting.
func NewRateLimiter(log logger.Log, counter RateCounter) *RateLimiter {
	return &RateLimiter{log: log, counter: counter}
}

// Limit allows at most limit requests per client IP within window for the
// routes sharing keySuffix. Counter failures let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.counter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := fmt.Sprintf("%s:%s", keySuffix, c.ClientIP())

		count, ttl, err := rl.counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			rl.log.ErrorErr("rate limiter unavailable", err, "key", key)
			c.Next()
			return
		}

		if count > int64(limit) {
			retryAfter := int(math.Ceil(ttl.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", fmt.Sprint(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "too many requests",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}
