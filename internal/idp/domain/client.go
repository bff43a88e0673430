package domain

import (
	"slices"
	"time"
)

// Client is an application registered with the identity provider.
type Client struct {
	ID         string
	Name       string
	SecretHash string // argon2id PHC string
	Scopes     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Allows reports whether the client may request scope.
func (c Client) Allows(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
