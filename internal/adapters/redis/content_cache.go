package redis_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	goredis "github.com/redis/go-redis/v9"
)

const contentKeyPrefix = "content:section:"

// ContentCache caches serialized CMS sections.
type ContentCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewContentCache(client *goredis.Client, ttl time.Duration) (*ContentCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &ContentCache{client: client, ttl: ttl}, nil
}

func contentKey(section domain.ContentSection) string {
	return contentKeyPrefix + string(section)
}

func (c *ContentCache) Get(ctx context.Context, section domain.ContentSection) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, contentKey(section)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached section %s: %w", section, err)
	}
	return raw, true, nil
}

func (c *ContentCache) Set(ctx context.Context, section domain.ContentSection, data []byte) error {
	if err := c.client.Set(ctx, contentKey(section), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache section %s: %w", section, err)
	}
	contextkeys.LoggerFromContext(ctx).Debug("Content section cached.", port.Fields{
		"component": "RedisContentCache",
		"section":   string(section),
	})
	return nil
}

func (c *ContentCache) Invalidate(ctx context.Context, section domain.ContentSection) error {
	if err := c.client.Del(ctx, contentKey(section)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate section %s: %w", section, err)
	}
	return nil
}
