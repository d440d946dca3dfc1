package store

import (
	"context"
	"sync"

	"github.com/nexauth/digestgate/core"
)

// MemoryStore is an in-memory implementation of the CredentialStore interface
type MemoryStore struct {
	credentials map[string]core.Credential
	mu          sync.RWMutex
}

// NewMemoryStore creates a new in-memory store seeded with the given credentials
func NewMemoryStore(creds ...core.Credential) *MemoryStore {
	s := &MemoryStore{
		credentials: make(map[string]core.Credential),
	}
	for _, cred := range creds {
		s.credentials[cred.Username] = cred
	}

	return s
}

// Add registers or replaces a credential
func (s *MemoryStore) Add(cred core.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credentials[cred.Username] = cred
}

// Remove deletes the credential for a username, if present
func (s *MemoryStore) Remove(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.credentials, username)
}

// Lookup resolves the credential for a username
func (s *MemoryStore) Lookup(ctx context.Context, username string) (*core.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.credentials[username]
	if !ok {
		return nil, core.ErrUsernameNotFound
	}

	// Return a copy so callers cannot mutate the stored credential
	out := cred
	return &out, nil
}
