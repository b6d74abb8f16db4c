package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

const (
	catalogKey = "catalog:all"
	catalogTTL = 5 * time.Minute
)

// CatalogCache keeps the full listing collection as one JSON blob in Redis.
// Any error on read is treated by callers as a miss.
type CatalogCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCatalogCache(addr string, log *zap.Logger) (*CatalogCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &CatalogCache{client: client, logger: log}, nil
}

// Get returns the cached catalog, or (nil, nil) on a miss.
func (c *CatalogCache) Get(ctx context.Context) ([]*domain.Listing, error) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *CatalogCache) Set(ctx context.Context, listings []*domain.Listing) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, catalogTTL).Err()
}

// Invalidate drops the cached catalog, forcing the next refresh to hit the
// listing store. Called after every successful create.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
