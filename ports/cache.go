package ports

import (
	"context"

	"github.com/nexauth/digestgate/core"
)

// CredentialCache fronts the credential store. Entry lifetime is the cache's
// concern; the verifier only reads through it and refreshes it.
type CredentialCache interface {
	// Get returns the cached credential for a username, or nil on a miss.
	Get(ctx context.Context, username string) (*core.Credential, error)

	// Put stores a credential under its username.
	Put(ctx context.Context, username string, cred *core.Credential) error
}
