package service

import (
	"fmt"
	"time"

	"github.com/nexauth/digestgate/core"
)

// ChallengeService mints nonces and formats WWW-Authenticate challenge
// headers. It shares the realm and signing secret with the verifier so every
// nonce it issues validates byte for byte.
type ChallengeService struct {
	realm         string
	secret        string
	nonceValidity time.Duration
}

// NewChallengeService creates a new challenge service
func NewChallengeService(realm, secret string, nonceValidity time.Duration) *ChallengeService {
	return &ChallengeService{
		realm:         realm,
		secret:        secret,
		nonceValidity: nonceValidity,
	}
}

// Challenge returns a WWW-Authenticate header value carrying a fresh nonce.
// stale marks the previous nonce as expired-but-otherwise-valid, telling the
// client it can retry with the new nonce without re-prompting for credentials.
func (s *ChallengeService) Challenge(stale bool) string {
	nonce := core.EncodeNonce(time.Now().Add(s.nonceValidity), s.secret)

	header := fmt.Sprintf("Digest realm=%q, qop=%q, nonce=%q", s.realm, core.QopAuth, nonce)
	if stale {
		header += `, stale="true"`
	}

	return header
}

// Realm returns the protection-space name sent with challenges.
func (s *ChallengeService) Realm() string {
	return s.realm
}
