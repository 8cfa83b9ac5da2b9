package marketdata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/marketgrid/depthbook/pkg/orderbook"
	"github.com/redis/go-redis/v9"
)

const depthKeyPrefix = "depth:"

// DepthCache keeps the latest per-symbol snapshot in redis so API readers
// never touch the books.
type DepthCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDepthCache(rdb *redis.Client, ttl time.Duration) *DepthCache {
	return &DepthCache{rdb: rdb, ttl: ttl}
}

func (c *DepthCache) PublishDepth(ctx context.Context, snap orderbook.DepthSnapshot) error {
	b, err := json.Marshal(toWire(snap))
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, depthKeyPrefix+snap.Symbol, b, c.ttl).Err()
}

func (c *DepthCache) Load(ctx context.Context, symbol string) (WireDepth, error) {
	var depth WireDepth

	b, err := c.rdb.Get(ctx, depthKeyPrefix+symbol).Bytes()
	if err != nil {
		return depth, err
	}
	err = json.Unmarshal(b, &depth)
	return depth, err
}
