package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placelist/placelist/internal/model"
)

const (
	placeKeyPrefix = "place:"

	// DefaultPlaceTTL is the TTL for cached place records.
	DefaultPlaceTTL = 10 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

func placeKey(id int64) string {
	return placeKeyPrefix + strconv.FormatInt(id, 10)
}

// GetPlace retrieves a cached place record.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetPlace(ctx context.Context, id int64) (*model.Place, error) {
	data, err := c.client.Get(ctx, placeKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var place model.Place
	if err := json.Unmarshal(data, &place); err != nil {
		// A record we cannot decode is as good as absent.
		c.client.Del(ctx, placeKey(id))
		return nil, ErrCacheMiss
	}

	return &place, nil
}

// SetPlace stores a place record. The review aggregate is never cached.
func (c *Cache) SetPlace(ctx context.Context, place *model.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("failed to encode place: %w", err)
	}

	if err := c.client.Set(ctx, placeKey(place.ID), data, DefaultPlaceTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// DeletePlace removes a cached place record.
func (c *Cache) DeletePlace(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, placeKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
