package revokedtokens

import (
	"context"
	"time"
)

type Repository interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string, expires time.Time) error
	PurgeExpired(ctx context.Context) error
}
