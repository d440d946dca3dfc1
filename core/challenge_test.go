package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChallenge(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Challenge
	}{
		{
			name:   "basic rfc2069 header",
			header: `username="bob", realm="example", nonce="abc", uri="/x", response="deadbeef"`,
			want:   Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "rfc2617 header with qop",
			header: `username="bob", realm="example", nonce="abc", uri="/x", response="deadbeef", qop=auth, nc=00000001, cnonce="0a4f113b"`,
			want: Challenge{
				Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef",
				Qop: "auth", Nc: "00000001", Cnonce: "0a4f113b",
			},
		},
		{
			name:   "comma inside quoted value is not a separator",
			header: `username="Smith, Bob", realm="example", nonce="abc", uri="/x", response="deadbeef"`,
			want:   Challenge{Username: "Smith, Bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "equals sign inside quoted value stays in the value",
			header: `username="a=b", realm="example", nonce="abc", uri="/x?q=1", response="deadbeef"`,
			want:   Challenge{Username: "a=b", Realm: "example", Nonce: "abc", URI: "/x?q=1", Response: "deadbeef"},
		},
		{
			name:   "last occurrence wins on duplicates",
			header: `username="first", username="second", realm="example", nonce="abc", uri="/x", response="deadbeef"`,
			want:   Challenge{Username: "second", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "unknown directives are ignored",
			header: `username="bob", realm="example", nonce="abc", uri="/x", response="deadbeef", opaque="xyz", algorithm=MD5`,
			want:   Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "whitespace around directives is trimmed",
			header: ` username = "bob" ,realm="example",  nonce="abc", uri="/x", response="deadbeef"`,
			want:   Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "unquoted values are kept verbatim",
			header: `username=bob, realm=example, nonce=abc, uri=/x, response=deadbeef`,
			want:   Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
		{
			name:   "empty header yields empty challenge",
			header: "",
			want:   Challenge{},
		},
		{
			name:   "entries without equals are skipped",
			header: `garbage, username="bob", realm="example", nonce="abc", uri="/x", response="deadbeef"`,
			want:   Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseChallenge(tt.header)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestChallengeValidate(t *testing.T) {
	valid := Challenge{Username: "bob", Realm: "example", Nonce: "abc", URI: "/x", Response: "deadbeef"}

	t.Run("valid rfc2069 challenge", func(t *testing.T) {
		c := valid
		assert.NoError(t, c.Validate())
	})

	t.Run("valid rfc2617 challenge", func(t *testing.T) {
		c := valid
		c.Qop = QopAuth
		c.Nc = "00000001"
		c.Cnonce = "0a4f113b"
		assert.NoError(t, c.Validate())
	})

	mandatory := []struct {
		name  string
		strip func(*Challenge)
	}{
		{"username", func(c *Challenge) { c.Username = "" }},
		{"realm", func(c *Challenge) { c.Realm = "" }},
		{"nonce", func(c *Challenge) { c.Nonce = "" }},
		{"uri", func(c *Challenge) { c.URI = "" }},
		{"response", func(c *Challenge) { c.Response = "" }},
	}

	for _, tt := range mandatory {
		t.Run("missing "+tt.name, func(t *testing.T) {
			c := valid
			tt.strip(&c)
			assert.ErrorIs(t, c.Validate(), ErrMissingMandatoryField)
		})
	}

	t.Run("qop auth without nc", func(t *testing.T) {
		c := valid
		c.Qop = QopAuth
		c.Cnonce = "0a4f113b"
		assert.ErrorIs(t, c.Validate(), ErrMissingAuthField)
	})

	t.Run("qop auth without cnonce", func(t *testing.T) {
		c := valid
		c.Qop = QopAuth
		c.Nc = "00000001"
		assert.ErrorIs(t, c.Validate(), ErrMissingAuthField)
	})
}
