package pincode

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pincode→district data changes rarely, so lookups are cached with a long
// TTL; a cache miss or a Redis failure just falls through to Postgres.
type Cache interface {
	Get(ctx context.Context, code string) (Pincode, bool)
	Set(ctx context.Context, p Pincode)
}

const pincodeCacheTTL = 12 * time.Hour

type redisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) key(code string) string {
	return "pincode:" + code
}

func (c *redisCache) Get(ctx context.Context, code string) (Pincode, bool) {
	raw, err := c.rdb.Get(ctx, c.key(code)).Bytes()
	if err != nil {
		return Pincode{}, false
	}

	var p Pincode
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pincode{}, false
	}
	return p, true
}

func (c *redisCache) Set(ctx context.Context, p Pincode) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, c.key(p.Pincode), raw, pincodeCacheTTL)
}

// NewNoopCache is used where Redis is not wired, e.g. tests.
func NewNoopCache() Cache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (Pincode, bool) { return Pincode{}, false }
func (noopCache) Set(context.Context, Pincode)                {}
