package booking

import (
	"context"
	"encoding/json"
	"time"

	"clubhouse/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const boardKeyPrefix = "slots:"

// RedisBoardCache keeps slot boards in Redis under "slots:<date>". Cache
// failures are logged and treated as misses.
type RedisBoardCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisBoardCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisBoardCache {
	return &RedisBoardCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisBoardCache) Get(ctx context.Context, date string) (*models.SlotBoard, bool) {
	raw, err := c.client.Get(ctx, boardKeyPrefix+date).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("slot board cache read failed", zap.String("date", date), zap.Error(err))
		}
		return nil, false
	}
	var board models.SlotBoard
	if err := json.Unmarshal(raw, &board); err != nil {
		c.logger.Warn("discarding corrupt slot board cache entry", zap.String("date", date), zap.Error(err))
		return nil, false
	}
	return &board, true
}

func (c *RedisBoardCache) Set(ctx context.Context, board *models.SlotBoard) {
	raw, err := json.Marshal(board)
	if err != nil {
		c.logger.Warn("failed to encode slot board", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, boardKeyPrefix+board.Date, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("slot board cache write failed", zap.String("date", board.Date), zap.Error(err))
	}
}

func (c *RedisBoardCache) Invalidate(ctx context.Context, date string) {
	if err := c.client.Del(ctx, boardKeyPrefix+date).Err(); err != nil {
		c.logger.Warn("slot board cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
