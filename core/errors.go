package core

import "errors"

// Rejection reasons, in the order the verifier checks them. Each one maps to
// a challenge response; none of them is an internal failure.
var (
	// ErrMissingMandatoryField is returned when a mandatory RFC 2069 directive is absent
	ErrMissingMandatoryField = errors.New("missing mandatory digest directive")

	// ErrMissingAuthField is returned when qop="auth" is requested without nc or cnonce
	ErrMissingAuthField = errors.New("missing nc or cnonce for auth quality of protection")

	// ErrRealmMismatch is returned when the response realm differs from the configured realm
	ErrRealmMismatch = errors.New("realm does not match")

	// ErrNonceNotBase64 is returned when the nonce token is not valid base64
	ErrNonceNotBase64 = errors.New("nonce is not encoded in base64")

	// ErrNonceMalformed is returned when the decoded nonce does not yield two tokens
	ErrNonceMalformed = errors.New("nonce did not yield two tokens")

	// ErrNonceNotNumeric is returned when the nonce expiry token is not numeric
	ErrNonceNotNumeric = errors.New("nonce expiry is not numeric")

	// ErrNonceCompromised is returned when the nonce signature does not verify
	ErrNonceCompromised = errors.New("nonce signature mismatch")

	// ErrUsernameNotFound is returned when the credential store has no such user
	ErrUsernameNotFound = errors.New("username not found")

	// ErrDigestMismatch is returned when the computed digest differs from the response
	ErrDigestMismatch = errors.New("incorrect response digest")

	// ErrNonceExpired is returned when an otherwise valid request used a stale nonce
	ErrNonceExpired = errors.New("nonce has expired")

	// ErrInvalidDigestInput is returned for digest parameters the engine cannot process
	ErrInvalidDigestInput = errors.New("invalid digest computation input")
)

// ErrStoreMisconfigured indicates a credential store contract violation: a
// lookup returned neither a credential nor an error. It is an internal
// failure, never an authentication rejection.
var ErrStoreMisconfigured = errors.New("credential store returned no credential and no error")

var rejections = []error{
	ErrMissingMandatoryField,
	ErrMissingAuthField,
	ErrRealmMismatch,
	ErrNonceNotBase64,
	ErrNonceMalformed,
	ErrNonceNotNumeric,
	ErrNonceCompromised,
	ErrUsernameNotFound,
	ErrDigestMismatch,
	ErrNonceExpired,
	ErrInvalidDigestInput,
}

// IsRejection reports whether err is an authentication rejection that should
// be answered with a new challenge, as opposed to an internal failure.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
