package core

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Nonce is the decoded form of a server-issued nonce token. The wire format
// is base64(expiryMillis ":" md5hex(expiryMillis ":" secret)), which makes
// the nonce self-certifying: no server-side session state is needed to
// validate it later.
type Nonce struct {
	ExpiresAt int64  // unix milliseconds
	Signature string // lowercase hex
}

// EncodeNonce mints a nonce token expiring at the given time, signed with the
// process-wide secret shared between challenge issuance and verification.
func EncodeNonce(expiresAt time.Time, secret string) string {
	expiry := expiresAt.UnixMilli()
	signature := md5Hex(fmt.Sprintf("%d:%s", expiry, secret))

	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%d:%s", expiry, signature)))
}

// DecodeNonce splits a nonce token back into its expiry and signature. The
// three failure modes are distinguished so the verifier can report them
// separately.
func DecodeNonce(token string) (*Nonce, error) {
	plain, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrNonceNotBase64
	}

	parts := strings.Split(string(plain), ":")
	if len(parts) != 2 {
		return nil, ErrNonceMalformed
	}

	expiry, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, ErrNonceNotNumeric
	}

	return &Nonce{ExpiresAt: expiry, Signature: parts[1]}, nil
}

// SignatureValid reports whether the embedded signature matches one
// recomputed from the embedded expiry and the secret. The comparison is
// constant time.
func (n *Nonce) SignatureValid(secret string) bool {
	expected := md5Hex(fmt.Sprintf("%d:%s", n.ExpiresAt, secret))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.Signature)) == 1
}

// Expired reports whether the nonce expiry lies before now.
func (n *Nonce) Expired(now time.Time) bool {
	return n.ExpiresAt < now.UnixMilli()
}

// VerifyNonce checks a token end to end: decode, signature, then expiry. A
// signature mismatch means tampering and is reported ahead of expiry. The
// verifier itself defers the expiry check until after the response digest is
// confirmed; this helper is for callers that have no digest to compare.
func VerifyNonce(token, secret string, now time.Time) error {
	nonce, err := DecodeNonce(token)
	if err != nil {
		return err
	}

	if !nonce.SignatureValid(secret) {
		return ErrNonceCompromised
	}

	if nonce.Expired(now) {
		return ErrNonceExpired
	}

	return nil
}
