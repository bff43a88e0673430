package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/domain"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
	"github.com/aussiebroadwan/twitchauth/pkg/cryptox"
	"github.com/aussiebroadwan/twitchauth/pkg/idx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
)

var (
	ErrInvalidClient  = errors.New("invalid client")
	ErrInvalidSecret  = errors.New("invalid client secret")
	ErrInvalidToken   = errors.New("invalid access token")
	ErrClientNotFound = errors.New("client does not exist")
	ErrTokenMismatch  = errors.New("token was not issued to this client")
	ErrInvalidScope   = errors.New("invalid scope")
)

// ScopeError names the first requested scope the client may not use. It
// matches ErrInvalidScope.
type ScopeError struct {
	Scope string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("invalid scope requested: '%s'", e.Scope)
}

func (e *ScopeError) Is(target error) bool { return target == ErrInvalidScope }

// DefaultAccessTTL approximates the lifetime Twitch gives app access tokens.
const DefaultAccessTTL = 60 * 24 * time.Hour

type TokenService struct {
	Store     store.Store
	Hasher    cryptox.SecretHasher
	AccessTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// Clock returns the service time, Now when set.
func (s *TokenService) Clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) ttl() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return DefaultAccessTTL
}

// IssueAppAccessToken implements the client_credentials grant. Every
// requested scope must be allowed for the client.
func (s *TokenService) IssueAppAccessToken(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*domain.IssuedToken, error) {
	l := slogx.FromContext(ctx)
	now := s.Clock()

	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidClient
		}
		return nil, err
	}

	if err := s.Hasher.Verify(clientSecret, client.SecretHash); err != nil {
		l.Info("client_credentials authentication failed", slog.String("client_id", clientID))
		return nil, ErrInvalidSecret
	}

	scopes = dedupe(scopes)
	for _, sc := range scopes {
		if !client.Allows(sc) {
			return nil, &ScopeError{Scope: sc}
		}
	}

	raw, err := cryptox.GenerateAccessToken()
	if err != nil {
		return nil, err
	}

	ttl := s.ttl()
	err = s.Store.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
		ID:        idx.NewAt(now).String(),
		ClientID:  client.ID,
		TokenHash: cryptox.FingerprintToken(raw),
		Scopes:    scopes,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	l.Info("app access token issued",
		slog.String("client_id", client.ID),
		slog.Any("scopes", scopes),
		slogx.Secret("token", raw),
	)

	return &domain.IssuedToken{
		AccessToken: raw,
		ExpiresIn:   int(ttl / time.Second),
		Scopes:      scopes,
		TokenType:   domain.TokenTypeBearer,
	}, nil
}

// Validate returns the live record for a raw access token.
func (s *TokenService) Validate(ctx context.Context, accessToken string) (domain.AccessToken, error) {
	if accessToken == "" {
		return domain.AccessToken{}, ErrInvalidToken
	}

	tok, err := s.Store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(accessToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AccessToken{}, ErrInvalidToken
		}
		return domain.AccessToken{}, err
	}

	if !tok.Active(s.Clock()) {
		return domain.AccessToken{}, ErrInvalidToken
	}
	return tok, nil
}

// Revoke invalidates accessToken on behalf of clientID. Revoking an already
// revoked or expired token of the same client succeeds.
func (s *TokenService) Revoke(ctx context.Context, accessToken, clientID string) error {
	l := slogx.FromContext(ctx)
	hash := cryptox.FingerprintToken(accessToken)

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Clients().GetClientByID(ctx, clientID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return err
		}

		tok, err := tx.AccessTokens().GetAccessTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if tok.ClientID != clientID {
			return ErrTokenMismatch
		}
		if tok.Revoked {
			return nil
		}

		if err := tx.AccessTokens().RevokeAccessToken(ctx, hash); err != nil {
			return err
		}

		l.Info("app access token revoked", slog.String("client_id", clientID), slog.String("token_id", tok.ID))
		return nil
	})
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
