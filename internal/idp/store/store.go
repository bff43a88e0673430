package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are reached
// through methods so a Tx exposes the same surface as the Store it came from.
type Store interface {
	Clients() Clients
	AccessTokens() AccessTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients, newest first.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient returns ErrAlreadyExists when the id is taken.
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient overwrites name, secret hash and scopes.
	UpdateClient(ctx context.Context, c domain.Client) error

	// DeleteClient cascades to the client's access tokens.
	DeleteClient(ctx context.Context, id string) error
}

type AccessTokens interface {
	CreateAccessToken(ctx context.Context, t domain.AccessToken) error

	// GetAccessTokenByHash returns the record regardless of expiry or
	// revocation; callers check domain.AccessToken.Active.
	GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error)

	// RevokeAccessToken flips revoked on the token with this hash.
	RevokeAccessToken(ctx context.Context, hash string) error

	// RevokeClientAccessTokens revokes every live token of a client and
	// returns how many were affected.
	RevokeClientAccessTokens(ctx context.Context, clientID string) (int64, error)

	// DeleteStaleAccessTokens removes tokens that expired before cutoff or
	// were revoked, returning the number deleted.
	DeleteStaleAccessTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
