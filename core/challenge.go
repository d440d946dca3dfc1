package core

import "strings"

// SchemePrefix introduces Digest credentials in an Authorization header.
const SchemePrefix = "Digest "

// Challenge holds the directives of a Digest authorization header, as sent by
// a client answering a server challenge.
type Challenge struct {
	Username string
	Realm    string
	Nonce    string // opaque token minted by the challenge issuer
	URI      string
	Response string // hex digest the client computed
	Qop      string // RFC 2617 extension; only "auth" is supported
	Nc       string // nonce count, required with qop="auth"
	Cnonce   string // client nonce, required with qop="auth"
}

// ParseChallenge parses the portion of an Authorization header value that
// follows the "Digest " scheme prefix. Directives are comma separated, with
// quoted values allowed to contain commas and equals signs. The last
// occurrence wins on duplicate directives; unknown directives are ignored.
func ParseChallenge(header string) *Challenge {
	directives := splitDirectives(header)

	return &Challenge{
		Username: directives["username"],
		Realm:    directives["realm"],
		Nonce:    directives["nonce"],
		URI:      directives["uri"],
		Response: directives["response"],
		Qop:      directives["qop"],
		Nc:       directives["nc"],
		Cnonce:   directives["cnonce"],
	}
}

// Validate checks that the mandatory RFC 2069 directives are present, and the
// RFC 2617 extension directives too when qop="auth" was used.
func (c *Challenge) Validate() error {
	if c.Username == "" || c.Realm == "" || c.Nonce == "" || c.URI == "" || c.Response == "" {
		return ErrMissingMandatoryField
	}

	if c.Qop == QopAuth && (c.Nc == "" || c.Cnonce == "") {
		return ErrMissingAuthField
	}

	return nil
}

// splitDirectives splits on commas outside quoted strings, then splits each
// entry on its first "=" and strips surrounding quotes from the value.
func splitDirectives(s string) map[string]string {
	directives := make(map[string]string)

	flush := func(entry string) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return
		}

		eq := strings.IndexByte(entry, '=')
		if eq < 0 {
			return
		}

		name := strings.TrimSpace(entry[:eq])
		value := strings.TrimSpace(entry[eq+1:])
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}

		directives[name] = value
	}

	inQuotes := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				flush(s[start:i])
				start = i + 1
			}
		}
	}
	flush(s[start:])

	return directives
}
