package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/domain"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, name, secret_hash, scopes, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c                domain.Client
		scopes           string
		created, updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.SecretHash, &scopes, &created, &updated); err != nil {
		return domain.Client{}, err
	}
	c.Scopes = splitScopes(scopes)
	c.CreatedAt = unixTime(created)
	c.UpdatedAt = unixTime(updated)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().Unix()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.SecretHash, joinScopes(c.Scopes), now, now,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, secret_hash = ?, scopes = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.SecretHash, joinScopes(c.Scopes), time.Now().Unix(), c.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected reports store.ErrNotFound when no row changed.
func requireAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
