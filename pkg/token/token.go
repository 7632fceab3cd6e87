// Package token issues and validates single-use account tokens for email
// activation and password reset. A token signs the user id together with a
// fingerprint of the user's current state, so any state change (password
// reset, activation) invalidates outstanding tokens without a revocation
// list.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidToken is the only failure surfaced by Validate and DecodeUID.
// Malformed, tampered, and stale tokens are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	return &Generator{secret: []byte(secret)}
}

// Issue builds a URL-safe token binding the user id to the given state
// fingerprint.
func (g *Generator) Issue(userID, fingerprint string) string {
	uid := base64.RawURLEncoding.EncodeToString([]byte(userID))
	sig := base64.RawURLEncoding.EncodeToString(g.sign(userID, fingerprint))
	return uid + "." + sig
}

// Validate decodes the token and recomputes the signature with the current
// fingerprint. It returns the embedded user id only when both match.
func (g *Generator) Validate(tok, fingerprint string) (string, error) {
	uidPart, sigPart, ok := strings.Cut(tok, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	uidRaw, err := base64.RawURLEncoding.DecodeString(uidPart)
	if err != nil {
		return "", ErrInvalidToken
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return "", ErrInvalidToken
	}
	userID := string(uidRaw)
	if !hmac.Equal(sig, g.sign(userID, fingerprint)) {
		return "", ErrInvalidToken
	}
	return userID, nil
}

func (g *Generator) sign(userID, fingerprint string) []byte {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(userID))
	mac.Write([]byte{0})
	mac.Write([]byte(fingerprint))
	return mac.Sum(nil)
}

// Fingerprint hashes the mutable parts of a user's state into a stable
// value embedded in token signatures.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeUID makes a user id safe to embed in email links, mirroring the uid
// field sent alongside the token.
func EncodeUID(userID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(encoded string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	return string(raw), nil
}
