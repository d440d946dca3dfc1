package core

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nonceSecret = "server-secret"

func TestNonceRoundTrip(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour)

	token := EncodeNonce(expiresAt, nonceSecret)

	nonce, err := DecodeNonce(token)
	require.NoError(t, err)

	assert.Equal(t, expiresAt.UnixMilli(), nonce.ExpiresAt)
	assert.True(t, nonce.SignatureValid(nonceSecret))
	assert.False(t, nonce.Expired(time.Now()))

	assert.NoError(t, VerifyNonce(token, nonceSecret, time.Now()))
}

func TestDecodeNonceFailures(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "not base64",
			token:   "!!!not-base64!!!",
			wantErr: ErrNonceNotBase64,
		},
		{
			name:    "no colon in plaintext",
			token:   base64.StdEncoding.EncodeToString([]byte("nocolons")),
			wantErr: ErrNonceMalformed,
		},
		{
			name:    "too many colons in plaintext",
			token:   base64.StdEncoding.EncodeToString([]byte("1:2:3")),
			wantErr: ErrNonceMalformed,
		},
		{
			name:    "expiry not numeric",
			token:   base64.StdEncoding.EncodeToString([]byte("soon:abcdef")),
			wantErr: ErrNonceNotNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeNonce(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifyNonceTampering(t *testing.T) {
	token := EncodeNonce(time.Now().Add(time.Hour), nonceSecret)

	nonce, err := DecodeNonce(token)
	require.NoError(t, err)

	// Flip one signature character and re-encode
	sig := []byte(nonce.Signature)
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	tampered := base64.StdEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%d:%s", nonce.ExpiresAt, string(sig))))

	assert.ErrorIs(t, VerifyNonce(tampered, nonceSecret, time.Now()), ErrNonceCompromised)
}

func TestVerifyNonceWrongSecret(t *testing.T) {
	token := EncodeNonce(time.Now().Add(time.Hour), nonceSecret)

	assert.ErrorIs(t, VerifyNonce(token, "other-secret", time.Now()), ErrNonceCompromised)
}

func TestVerifyNonceExpired(t *testing.T) {
	token := EncodeNonce(time.Now().Add(-time.Minute), nonceSecret)

	// Signature still verifies; only freshness is gone
	nonce, err := DecodeNonce(token)
	require.NoError(t, err)
	assert.True(t, nonce.SignatureValid(nonceSecret))

	assert.ErrorIs(t, VerifyNonce(token, nonceSecret, time.Now()), ErrNonceExpired)
}
