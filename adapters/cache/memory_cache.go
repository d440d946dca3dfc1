package cache

import (
	"context"
	"sync"

	"github.com/nexauth/digestgate/core"
)

// MemoryCache is an in-memory implementation of the CredentialCache interface
type MemoryCache struct {
	credentials map[string]core.Credential
	mu          sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		credentials: make(map[string]core.Credential),
	}
}

// Get returns the cached credential for a username, or nil on a miss
func (c *MemoryCache) Get(ctx context.Context, username string) (*core.Credential, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cred, ok := c.credentials[username]
	if !ok {
		return nil, nil
	}

	out := cred
	return &out, nil
}

// Put stores a credential under its username
func (c *MemoryCache) Put(ctx context.Context, username string, cred *core.Credential) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.credentials[username] = *cred

	return nil
}
