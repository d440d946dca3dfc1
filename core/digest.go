package core

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// QopAuth is the only supported quality-of-protection value.
const QopAuth = "auth"

// ComputeDigest computes the expected response digest for a Digest
// authorization per RFC 2617, falling back to the RFC 2069 form when no qop
// directive was sent.
//
// When secretHashed is true the credential secret is taken to already be
// md5(username ":" realm ":" password); otherwise HA1 is computed here.
func ComputeDigest(secretHashed bool, username, realm, secret, method, uri, qop, nonce, nc, cnonce string) (string, error) {
	ha1 := secret
	if !secretHashed {
		ha1 = md5Hex(username + ":" + realm + ":" + secret)
	}
	ha2 := md5Hex(method + ":" + uri)

	switch qop {
	case "":
		// RFC 2069 legacy form
		return md5Hex(ha1 + ":" + nonce + ":" + ha2), nil
	case QopAuth:
		if nc == "" || cnonce == "" {
			return "", fmt.Errorf("%w: qop=%q requires nc and cnonce", ErrInvalidDigestInput, qop)
		}
		return md5Hex(ha1 + ":" + nonce + ":" + nc + ":" + cnonce + ":" + qop + ":" + ha2), nil
	default:
		return "", fmt.Errorf("%w: unsupported qop %q", ErrInvalidDigestInput, qop)
	}
}

// md5Hex renders the 128-bit digest of s as lowercase hex, the encoding used
// for both nonce signatures and response digests.
func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
