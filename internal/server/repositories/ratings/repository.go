package ratings

import "context"

type Repository interface {
	ListForPost(ctx context.Context, postID int64) (likes, dislikes []string, err error)
	Set(ctx context.Context, postID int64, nickname string, isLike bool) error
	Unset(ctx context.Context, postID int64, nickname string) error
	DeleteForPost(ctx context.Context, postID int64) error
}
