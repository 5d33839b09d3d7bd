package posts

import (
	"context"

	"github.com/dmitrijs2005/postkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, author, title, content string) (int64, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, limit int) ([]*models.Post, error)
	Update(ctx context.Context, id int64, newTitle, newContent string) error
	Delete(ctx context.Context, id int64) error
}
