package core

// Credential is a stored secret for a username, as resolved from the
// credential store.
type Credential struct {
	Username   string            // Name the client authenticates as
	Secret     string            // Cleartext password, or md5(username:realm:password) when pre-hashed
	Attributes map[string]string // Opaque identity data carried through on success
}

// Identity represents a successfully authenticated principal.
type Identity struct {
	Username   string            // Authenticated username
	Attributes map[string]string // Identity data from the resolved credential
}
