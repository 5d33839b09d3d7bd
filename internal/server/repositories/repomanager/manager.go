package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/posts"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/ratings"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/revokedtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Posts(db dbx.DBTX) posts.Repository
	Ratings(db dbx.DBTX) ratings.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
