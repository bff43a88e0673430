package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/aussiebroadwan/twitchauth/internal/idp/domain"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
	"github.com/aussiebroadwan/twitchauth/pkg/cryptox"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
)

type ClientService struct {
	Store  store.Store
	Hasher cryptox.SecretHasher
}

// CreateClient registers a client with a generated id and secret. The
// plaintext secret is only ever returned here.
func (s *ClientService) CreateClient(
	ctx context.Context,
	name string,
	scopes []string,
) (clientID, secret string, err error) {
	l := slogx.FromContext(ctx)

	clientID, err = cryptox.GenerateOpaque(cryptox.SecretLength)
	if err != nil {
		return "", "", err
	}
	secret, err = cryptox.GenerateSecret()
	if err != nil {
		return "", "", err
	}

	hash, err := s.Hasher.Hash(secret)
	if err != nil {
		return "", "", err
	}

	err = s.Store.Clients().CreateClient(ctx, domain.Client{
		ID:         clientID,
		Name:       name,
		SecretHash: hash,
		Scopes:     dedupe(scopes),
	})
	if err != nil {
		return "", "", err
	}

	l.Info("client created", slog.String("client_id", clientID), slog.String("name", name))
	return clientID, secret, nil
}

// EnsureClient makes sure a client with the given id, secret and scopes
// exists, creating or updating it as needed. Used to seed the provider from
// configuration at startup.
func (s *ClientService) EnsureClient(
	ctx context.Context,
	clientID, name, secret string,
	scopes []string,
) error {
	l := slogx.FromContext(ctx)
	scopes = dedupe(scopes)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Clients().GetClientByID(ctx, clientID)
		if errors.Is(err, store.ErrNotFound) {
			hash, err := s.Hasher.Hash(secret)
			if err != nil {
				return err
			}
			l.Info("seeding client", slog.String("client_id", clientID))
			return tx.Clients().CreateClient(ctx, domain.Client{
				ID:         clientID,
				Name:       name,
				SecretHash: hash,
				Scopes:     scopes,
			})
		}
		if err != nil {
			return err
		}

		changed := existing.Name != name || !slices.Equal(existing.Scopes, scopes)
		if s.Hasher.Verify(secret, existing.SecretHash) != nil {
			hash, err := s.Hasher.Hash(secret)
			if err != nil {
				return err
			}
			existing.SecretHash = hash
			changed = true

			// A rotated secret invalidates everything issued under the old one
			n, err := tx.AccessTokens().RevokeClientAccessTokens(ctx, clientID)
			if err != nil {
				return err
			}
			l.Info("client secret rotated", slog.String("client_id", clientID), slog.Int64("revoked_tokens", n))
		}
		if !changed {
			return nil
		}

		existing.Name = name
		existing.Scopes = scopes
		return tx.Clients().UpdateClient(ctx, existing)
	})
}

// ListClients returns all registered clients.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

// DeleteClient removes a client and every token issued to it.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) error {
	err := s.Store.Clients().DeleteClient(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrClientNotFound
	}
	return err
}
