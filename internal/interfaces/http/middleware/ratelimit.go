package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/interfaces/http/dto"
)

// RateLimiter implements a fixed-window rate limiter backed by Redis so
// the limit holds across replicas
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow counts the request against the key's current window and reports
// whether it is within the limit, along with the remaining budget
func (rl *RateLimiter) Allow(c *gin.Context, key string) (bool, int) {
	ctx := c.Request.Context()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(rl.window.Seconds()))

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		// Fail open: a Redis outage should not block traffic
		rl.logger.Error("Rate limit check failed", zap.Error(err))
		return true, rl.limit
	}
	if count == 1 {
		rl.client.Expire(ctx, redisKey, rl.window)
	}

	remaining := rl.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= rl.limit, remaining
}

// RateLimit returns a rate limiting middleware keyed by tenant when
// authenticated, falling back to client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if tenantID := GetJWTTenantID(c); tenantID != "" {
			key = tenantID
		}

		allowed, remaining := limiter.Allow(c, key)
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}
