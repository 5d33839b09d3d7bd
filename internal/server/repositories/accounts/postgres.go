// Package accounts provides a PostgreSQL-backed repository for user accounts.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// PostgresRepository implements account storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account row. If the nickname is already taken it
// returns common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (nickname, password_hash, salt)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, account.Nickname, account.PasswordHash, account.Salt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByNickname returns the account row for the given nickname.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByNickname(ctx context.Context, nickname string) (*models.Account, error) {
	query := `
		SELECT nickname, password_hash, salt, created_at
		FROM accounts
		WHERE nickname = $1
	`
	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, nickname).
		Scan(&account.Nickname, &account.PasswordHash, &account.Salt, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}
