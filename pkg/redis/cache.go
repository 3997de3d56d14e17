package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// keyValueStore is the subset of Client a Cache needs.
type keyValueStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheOptions represents options for cache operations
type CacheOptions struct {
	// TTL is used when the client config has no entry for CacheName
	TTL time.Duration
	// CacheName prefixes every key as CacheName::key and selects the TTL
	CacheName string
}

// NewCacheOptions creates cache options with a one hour TTL
func NewCacheOptions(cacheName string) *CacheOptions {
	return &CacheOptions{TTL: time.Hour, CacheName: cacheName}
}

// WithTTL sets the TTL for cache operations
func (co *CacheOptions) WithTTL(ttl time.Duration) *CacheOptions {
	co.TTL = ttl
	return co
}

// Cache stores JSON-encoded values under a name-spaced key
type Cache struct {
	store keyValueStore
	name  string
	ttl   time.Duration
}

// NewCache creates a cache. The TTL configured for the cache name on the client
// wins over the option TTL.
func NewCache(client *Client, opts *CacheOptions) *Cache {
	if opts == nil {
		opts = NewCacheOptions("")
	}

	ttl := opts.TTL
	if opts.CacheName != "" && client.config != nil {
		if configured, ok := client.config.CacheTTLs[opts.CacheName]; ok {
			ttl = configured
		} else if client.config.DefaultCacheTTL > 0 && ttl <= 0 {
			ttl = client.config.DefaultCacheTTL
		}
	}

	return &Cache{store: client, name: opts.CacheName, ttl: ttl}
}

// Name returns the cache name
func (c *Cache) Name() string {
	return c.name
}

// TTL returns the expiration applied on Set
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) buildCacheKey(key string) string {
	if c.name != "" {
		return c.name + "::" + key
	}
	return key
}

// Get decodes the cached value into dest. A miss returns ErrNotFound.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.store.GetBytes(ctx, c.buildCacheKey(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to deserialize cached value: %w", err)
	}
	return nil
}

// Set stores value as JSON with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return c.store.Set(ctx, c.buildCacheKey(key), data, c.ttl)
}

// Delete removes a value from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Delete(ctx, c.buildCacheKey(key))
}

// GetOrSet loads key into dest, calling loader on a miss and caching its
// result. Cache read/write failures other than a miss fall back to loader
// without failing the call.
func (c *Cache) GetOrSet(ctx context.Context, key string, dest interface{}, loader func() (interface{}, error)) (bool, error) {
	err := c.Get(ctx, key, dest)
	if err == nil {
		return true, nil
	}

	value, loadErr := loader()
	if loadErr != nil {
		return false, loadErr
	}

	data, marshalErr := json.Marshal(value)
	if marshalErr != nil {
		return false, fmt.Errorf("failed to serialize value: %w", marshalErr)
	}
	if unmarshalErr := json.Unmarshal(data, dest); unmarshalErr != nil {
		return false, fmt.Errorf("failed to copy loaded value: %w", unmarshalErr)
	}

	_ = c.store.Set(ctx, c.buildCacheKey(key), data, c.ttl)
	return false, nil
}
