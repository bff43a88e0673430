package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

const (
	// AccessTokenLength matches the length of Twitch app access tokens.
	AccessTokenLength = 30

	// SecretLength matches the length of Twitch client secrets.
	SecretLength = 30

	opaqueCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateOpaque returns n characters drawn uniformly from lowercase
// letters and digits.
func GenerateOpaque(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}

	max := big.NewInt(int64(len(opaqueCharset)))
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random token: %w", err)
		}
		out[i] = opaqueCharset[v.Int64()]
	}
	return string(out), nil
}

// GenerateAccessToken returns a new opaque access token.
func GenerateAccessToken() (string, error) {
	return GenerateOpaque(AccessTokenLength)
}

// GenerateSecret returns a new client secret.
func GenerateSecret() (string, error) {
	return GenerateOpaque(SecretLength)
}

// FingerprintToken returns the base64url SHA-256 of token. Stores keep the
// fingerprint only, never the token itself.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
