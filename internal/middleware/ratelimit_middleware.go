package middleware

import (
	"net/http"
	"time"

	"go-grocer-api/internal/pkg/apperror"
	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Sliding-window limiter over Redis sorted sets. The Lua script keeps the
// window trim, count and insert atomic across api replicas.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local current = redis.call('ZCARD', key)
	if current < limit then
		local counter = redis.call('INCR', key .. ':counter')
		redis.call('ZADD', key, now, now .. ':' .. counter)
		local expire_seconds = math.ceil(window_ms / 1000)
		redis.call('EXPIRE', key, expire_seconds)
		redis.call('EXPIRE', key .. ':counter', expire_seconds)
		return 1
	end
	return 0
`)

func allow(c *gin.Context, rdb *redis.Client, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	res, err := slidingWindowScript.Run(
		c.Request.Context(),
		rdb,
		[]string{"ratelimit:" + key},
		now.UnixMilli(),
		now.Add(-window).UnixMilli(),
		limit,
		window.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func rateLimit(rdb *redis.Client, keyFn func(*gin.Context) string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		ok, err := allow(c, rdb, key, limit, window)
		if err != nil {
			// Redis being down should not take the API down with it.
			c.Next()
			return
		}

		if !ok {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeTooMany, "Too many requests, slow down", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RateLimitByUser limits authenticated traffic per user id. Must run after
// AuthMiddleware.
func RateLimitByUser(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(rdb, func(c *gin.Context) string {
		uid := c.GetString("user_id_validated")
		if uid == "" {
			return ""
		}
		return "user:" + uid + ":" + c.FullPath()
	}, limit, window)
}

// RateLimitByIP is the outer infrastructure layer for unauthenticated or
// admin-facing routes.
func RateLimitByIP(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return rateLimit(rdb, func(c *gin.Context) string {
		return "ip:" + c.ClientIP() + ":" + c.FullPath()
	}, limit, window)
}
