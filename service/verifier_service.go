package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nexauth/digestgate/core"
	"github.com/nexauth/digestgate/ports"
)

// Outcome labels published with auth events.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// VerifierService checks Digest authorization headers against the credential
// store. Verification is stateless per request: everything needed to validate
// the nonce is embedded in the nonce itself and signed with the shared secret.
type VerifierService struct {
	store  ports.CredentialStore
	cache  ports.CredentialCache
	events ports.EventPublisher

	realm        string
	secret       string
	secretHashed bool

	now func() time.Time
}

// NewVerifierService creates a new verifier. The realm and secret must match
// the ones used by the challenge issuer or no issued nonce will validate.
// cache and events may be nil.
func NewVerifierService(
	store ports.CredentialStore,
	cache ports.CredentialCache,
	events ports.EventPublisher,
	realm string,
	secret string,
	secretHashed bool,
) *VerifierService {
	return &VerifierService{
		store:        store,
		cache:        cache,
		events:       events,
		realm:        realm,
		secret:       secret,
		secretHashed: secretHashed,
		now:          time.Now,
	}
}

// Verify checks an Authorization header value for the given request method.
//
// A nil identity with a nil error means no Digest credentials were presented;
// the request should proceed unauthenticated and be allowed or denied
// downstream. Rejections satisfy core.IsRejection; any other error is an
// internal failure.
//
// Nonce expiry is deliberately checked last, after the response digest is
// confirmed, so a client with otherwise valid credentials can be told its
// nonce is stale instead of being treated as a bad login.
func (s *VerifierService) Verify(ctx context.Context, authorization, method string) (*core.Identity, error) {
	if !strings.HasPrefix(authorization, core.SchemePrefix) {
		return nil, nil
	}

	challenge := core.ParseChallenge(authorization[len(core.SchemePrefix):])
	slog.Debug("digest authorization received", "username", challenge.Username, "uri", challenge.URI)

	if err := challenge.Validate(); err != nil {
		return nil, s.reject(ctx, challenge.Username, err)
	}

	if challenge.Realm != s.realm {
		return nil, s.reject(ctx, challenge.Username,
			fmt.Errorf("%w: got %q, want %q", core.ErrRealmMismatch, challenge.Realm, s.realm))
	}

	nonce, err := core.DecodeNonce(challenge.Nonce)
	if err != nil {
		return nil, s.reject(ctx, challenge.Username, err)
	}

	if !nonce.SignatureValid(s.secret) {
		return nil, s.reject(ctx, challenge.Username, core.ErrNonceCompromised)
	}

	cred, fromCache, err := s.resolve(ctx, challenge.Username)
	if err != nil {
		if core.IsRejection(err) {
			return nil, s.reject(ctx, challenge.Username, err)
		}
		return nil, err
	}

	serverDigest, err := s.computeDigest(challenge, cred, method)
	if err != nil {
		return nil, s.reject(ctx, challenge.Username, err)
	}

	// On a mismatch against a cached credential, refresh from the store once
	// in case the password changed after it was cached.
	if serverDigest != challenge.Response && fromCache {
		slog.Debug("digest mismatch, refreshing credential from store", "username", challenge.Username)

		cred, err = s.refresh(ctx, challenge.Username)
		if err != nil {
			if core.IsRejection(err) {
				return nil, s.reject(ctx, challenge.Username, err)
			}
			return nil, err
		}

		serverDigest, err = s.computeDigest(challenge, cred, method)
		if err != nil {
			return nil, s.reject(ctx, challenge.Username, err)
		}
	}

	if serverDigest != challenge.Response {
		return nil, s.reject(ctx, challenge.Username, core.ErrDigestMismatch)
	}

	if nonce.Expired(s.now()) {
		return nil, s.reject(ctx, challenge.Username, core.ErrNonceExpired)
	}

	slog.Debug("digest authentication success", "username", challenge.Username)
	s.publish(ctx, challenge.Username, OutcomeAccepted, "")

	return &core.Identity{Username: cred.Username, Attributes: cred.Attributes}, nil
}

// resolve returns the credential for a username, preferring the cache. The
// second return value reports whether the credential came from the cache. A
// fresh store lookup populates the cache. Cache read failures degrade to a
// miss so a cache outage only costs the store round trip.
func (s *VerifierService) resolve(ctx context.Context, username string) (*core.Credential, bool, error) {
	if s.cache != nil {
		cred, err := s.cache.Get(ctx, username)
		if err != nil {
			slog.Warn("credential cache read failed", "username", username, "error", err)
		} else if cred != nil {
			return cred, true, nil
		}
	}

	cred, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrUsernameNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("credential lookup failed: %w", err)
	}
	if cred == nil {
		return nil, false, core.ErrStoreMisconfigured
	}

	s.cachePut(ctx, username, cred)

	return cred, false, nil
}

// refresh bypasses the cache and re-reads the store. A not-found here means
// the user disappeared after the cache was filled; it fails immediately
// rather than comparing against the stale cached secret.
func (s *VerifierService) refresh(ctx context.Context, username string) (*core.Credential, error) {
	cred, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrUsernameNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("credential refresh failed: %w", err)
	}
	if cred == nil {
		return nil, core.ErrStoreMisconfigured
	}

	s.cachePut(ctx, username, cred)

	return cred, nil
}

func (s *VerifierService) computeDigest(challenge *core.Challenge, cred *core.Credential, method string) (string, error) {
	return core.ComputeDigest(
		s.secretHashed,
		challenge.Username,
		challenge.Realm,
		cred.Secret,
		method,
		challenge.URI,
		challenge.Qop,
		challenge.Nonce,
		challenge.Nc,
		challenge.Cnonce,
	)
}

// cachePut stores a credential best effort; the store stays authoritative.
func (s *VerifierService) cachePut(ctx context.Context, username string, cred *core.Credential) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Put(ctx, username, cred); err != nil {
		slog.Warn("credential cache write failed", "username", username, "error", err)
	}
}

// reject publishes the outcome and returns the rejection unchanged.
func (s *VerifierService) reject(ctx context.Context, username string, err error) error {
	slog.Debug("digest authentication rejected", "username", username, "reason", err)
	s.publish(ctx, username, OutcomeRejected, err.Error())

	return err
}

func (s *VerifierService) publish(ctx context.Context, username, outcome, reason string) {
	if s.events == nil {
		return
	}

	if err := s.events.PublishOutcome(ctx, username, outcome, reason); err != nil {
		slog.Warn("failed to publish auth event", "username", username, "error", err)
	}
}
