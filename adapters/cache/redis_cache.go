package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexauth/digestgate/core"
)

// RedisCache is a Redis implementation of the CredentialCache interface
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a new Redis credential cache. Entries expire after
// ttl; the verifier sees an expired entry as an ordinary miss and falls back
// to the store.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: "digestgate:credential:",
		ttl:    ttl,
	}
}

// Get retrieves a cached credential, returning nil on a miss
func (c *RedisCache) Get(ctx context.Context, username string) (*core.Credential, error) {
	payload, err := c.client.Get(ctx, c.prefix+username).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached credential: %w", err)
	}

	var cred core.Credential
	if err := json.Unmarshal(payload, &cred); err != nil {
		return nil, fmt.Errorf("failed to decode cached credential: %w", err)
	}

	return &cred, nil
}

// Put stores a credential under the username key with the cache TTL
func (c *RedisCache) Put(ctx context.Context, username string, cred *core.Credential) error {
	payload, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+username, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache credential: %w", err)
	}

	return nil
}
