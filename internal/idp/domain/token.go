package domain

import "time"

// TokenTypeBearer is the token_type reported for app access tokens.
const TokenTypeBearer = "bearer"

// AccessToken is the stored record of an issued app access token. The token
// itself is never stored, only its fingerprint.
type AccessToken struct {
	ID        string
	ClientID  string
	TokenHash string // base64url SHA-256 of the opaque token
	Scopes    []string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// Active reports whether the token is usable at now.
func (t AccessToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// ExpiresIn is the remaining lifetime in whole seconds, never negative.
func (t AccessToken) ExpiresIn(now time.Time) int {
	return max(int(t.ExpiresAt.Sub(now)/time.Second), 0)
}

// IssuedToken is what the token endpoint hands back to the caller.
type IssuedToken struct {
	AccessToken string
	ExpiresIn   int
	Scopes      []string
	TokenType   string
}
