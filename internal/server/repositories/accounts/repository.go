package accounts

import (
	"context"

	"github.com/dmitrijs2005/postkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByNickname(ctx context.Context, nickname string) (*models.Account, error)
}
