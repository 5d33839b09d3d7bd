package revokedtokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestIsRevoked(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"revoked", true},
		{"not revoked", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			rows := sqlmock.NewRows([]string{"exists"}).AddRow(tc.want)
			mock.ExpectQuery(`(?s)SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+revoked_tokens\s+WHERE\s+token\s*=\s*\$1\)`).
				WithArgs("tok").
				WillReturnRows(rows)

			got, err := repo.IsRevoked(context.Background(), "tok")
			if err != nil {
				t.Fatalf("IsRevoked error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsRevoked = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRevoke_InsertIfAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(30 * time.Minute)
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+revoked_tokens.*ON\s+CONFLICT\s*\(token\)\s*DO\s+NOTHING`).
		WithArgs("tok", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Revoke(context.Background(), "tok", expires); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
}

func TestRevoke_IdempotentConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now()
	// ON CONFLICT DO NOTHING reports zero affected rows; that is still success.
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+revoked_tokens`).
		WithArgs("tok", expires).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Revoke(context.Background(), "tok", expires); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+revoked_tokens\s+WHERE\s+expires_at\s*<=\s*now\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.PurgeExpired(context.Background()); err != nil {
		t.Fatalf("PurgeExpired error: %v", err)
	}
}

func TestPurgeExpired_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+revoked_tokens`).
		WillReturnError(errors.New("db down"))

	if err := repo.PurgeExpired(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
