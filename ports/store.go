package ports

import (
	"context"

	"github.com/nexauth/digestgate/core"
)

// CredentialStore is the authoritative source of credentials.
type CredentialStore interface {
	// Lookup resolves the credential for a username. It returns
	// core.ErrUsernameNotFound when no such user exists.
	Lookup(ctx context.Context, username string) (*core.Credential, error)
}
