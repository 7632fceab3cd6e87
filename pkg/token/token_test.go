package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	g := NewGenerator("secret")
	fp := Fingerprint("hash-a", "false")

	tok := g.Issue("user-1", fp)
	uid, err := g.Validate(tok, fp)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestValidateFailsAfterFingerprintChange(t *testing.T) {
	g := NewGenerator("secret")
	before := Fingerprint("old-password-hash", "true")
	after := Fingerprint("new-password-hash", "true")

	tok := g.Issue("user-1", before)
	_, err := g.Validate(tok, after)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMalformedTokens(t *testing.T) {
	g := NewGenerator("secret")
	fp := Fingerprint("hash")

	tests := []struct {
		name string
		tok  string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"bad uid encoding", "!!!.c2ln"},
		{"bad signature encoding", "dXNlcg.!!!"},
		{"truncated signature", strings.Split(g.Issue("user-1", fp), ".")[0] + ".c2ln"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Validate(tc.tok, fp)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	fp := Fingerprint("hash")
	tok := NewGenerator("secret-a").Issue("user-1", fp)
	_, err := NewGenerator("secret-b").Validate(tok, fp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUIDRoundTrip(t *testing.T) {
	uid, err := DecodeUID(EncodeUID("3f2c1d9e"))
	require.NoError(t, err)
	assert.Equal(t, "3f2c1d9e", uid)

	_, err = DecodeUID("not base64 !!!")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFingerprintIsOrderSensitive(t *testing.T) {
	assert.NotEqual(t, Fingerprint("a", "b"), Fingerprint("b", "a"))
	assert.NotEqual(t, Fingerprint("ab"), Fingerprint("a", "b"))
}
