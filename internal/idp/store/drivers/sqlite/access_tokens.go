package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/domain"
)

type accessTokensRepo struct {
	db dbtx
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_tokens (id, client_id, token_hash, scopes, expires_at, revoked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ClientID, t.TokenHash, joinScopes(t.Scopes), t.ExpiresAt.Unix(), t.Revoked, created.Unix(),
	)
	return mapConstraint(err)
}

func (r *accessTokensRepo) GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error) {
	var (
		t                domain.AccessToken
		scopes           string
		expires, created int64
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, token_hash, scopes, expires_at, revoked, created_at
		FROM access_tokens WHERE token_hash = ?`, hash,
	).Scan(&t.ID, &t.ClientID, &t.TokenHash, &scopes, &expires, &t.Revoked, &created)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}

	t.Scopes = splitScopes(scopes)
	t.ExpiresAt = unixTime(expires)
	t.CreatedAt = unixTime(created)
	return t, nil
}

func (r *accessTokensRepo) RevokeAccessToken(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE access_tokens SET revoked = 1 WHERE token_hash = ?`, hash)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *accessTokensRepo) RevokeClientAccessTokens(ctx context.Context, clientID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE access_tokens SET revoked = 1 WHERE client_id = ? AND revoked = 0`, clientID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *accessTokensRepo) DeleteStaleAccessTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM access_tokens WHERE revoked = 1 OR expires_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
