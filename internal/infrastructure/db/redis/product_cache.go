package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shoplite/catalog-system/internal/core/domain"
)

const cacheTTL = time.Minute

// ProductCache is a short-TTL read cache for product lookups backed by
// Redis. Key format: product:<id>
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get returns the cached product, or (nil, nil) on a miss.
func (c *ProductCache) Get(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product cache get: %w", err)
	}

	var p domain.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("product cache decode: %w", err)
	}
	return &p, nil
}

// Set stores the product for cacheTTL.
func (c *ProductCache) Set(ctx context.Context, p *domain.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("product cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(p.ID), raw, cacheTTL).Err()
}

// Invalidate drops the cached entry after a write.
func (c *ProductCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id string) string {
	return "product:" + id
}
