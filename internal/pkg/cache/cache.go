package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/mailscout/profile_go_server/internal/model"
)

const (
	profileKeyPrefix = "profile:"
	defaultTTL       = 5 * time.Minute
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache miss")

// ProfileCache 档案读缓存，写路径负责失效
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client) *ProfileCache {
	return &ProfileCache{
		rdb: rdb,
		ttl: defaultTTL,
	}
}

// Get 读取缓存的档案，未命中返回 ErrMiss
func (c *ProfileCache) Get(ctx context.Context, id string) (*model.Profile, error) {
	data, err := c.rdb.Get(ctx, profileKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get cached profile: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached profile: %w", err)
	}
	return &profile, nil
}

// Set 写入档案缓存
func (c *ProfileCache) Set(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return c.rdb.Set(ctx, profileKeyPrefix+profile.ID, data, c.ttl).Err()
}

// Invalidate 使档案缓存失效
func (c *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, profileKeyPrefix+id).Err()
}
