// Package revokedtokens provides a PostgreSQL-backed revocation list for
// session tokens. Tokens are otherwise stateless, so logout works by
// recording them here until their own expiry has passed.
package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/dbx"
)

// PostgresRepository implements the revocation list over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// IsRevoked reports whether an entry exists for the token. The recorded
// expiry is ignored here; a stale entry still counts until purged.
func (r *PostgresRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)
	`
	var revoked bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&revoked); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return revoked, nil
}

// Revoke inserts an entry for the token if absent. Revoking an already
// revoked token leaves the original entry untouched.
func (r *PostgresRepository) Revoke(ctx context.Context, token string, expires time.Time) error {
	query := `
		INSERT INTO revoked_tokens (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, token, expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// PurgeExpired deletes entries whose recorded expiry has passed. It is
// invoked opportunistically when an expired signature is detected, not on
// a schedule.
func (r *PostgresRepository) PurgeExpired(ctx context.Context) error {
	query := `
		DELETE FROM revoked_tokens
		WHERE expires_at <= now()
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
