package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go-grocer-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

// cachedResponse is the stored form of a completed response: the original
// status plus the exact body bytes, so a replay is indistinguishable from
// the first response.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// captureWriter mirrors everything written to the client into a buffer so
// the finished response can be cached for replay.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func encodeCachedResponse(status int, body []byte) ([]byte, error) {
	return json.Marshal(cachedResponse{Status: status, Body: body})
}

func replayCachedResponse(c *gin.Context, raw []byte) bool {
	var stored cachedResponse
	if err := json.Unmarshal(raw, &stored); err != nil || stored.Status == 0 {
		return false
	}
	c.Data(stored.Status, "application/json", stored.Body)
	return true
}

// Idempotency guards mutating endpoints against double submission. The
// client sends an Idempotency-Key header; a finished response is replayed
// with its original status and body, an in-flight duplicate is rejected
// with 409. Only 2xx responses are cached, so a failed attempt can be
// retried with the same key.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := "idempotency:response:" + userID + ":" + key
		lockKey := "idempotency:lock:" + userID + ":" + key
		ctx := c.Request.Context()

		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			if replayCachedResponse(c, []byte(cached)) {
				c.Abort()
				return
			}
		}

		locked, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err == nil && !locked {
			response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "An identical request is already being processed", nil)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if payload, err := encodeCachedResponse(status, w.body.Bytes()); err == nil {
				rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL)
			}
		}
		rdb.Del(ctx, lockKey)
	}
}
