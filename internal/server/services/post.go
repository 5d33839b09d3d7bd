// PostService: CRUD and rating operations on posts, gated by the identities
// produced by the validation pipeline.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
	"github.com/dmitrijs2005/postkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postkeeper/internal/server/validate"
)

// PostService implements post CRUD plus per-user like/dislike state,
// enforcing authorship and the one-rating-per-user invariant.
type PostService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewPostService constructs a PostService over the given repositories.
func NewPostService(db *sql.DB, repos repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repos: repos}
}

// Create validates the post shape and inserts it, returning the
// storage-assigned id.
func (s *PostService) Create(ctx context.Context, author, title, content string) (int64, Status) {
	if !validate.CheckPost(title, content) {
		return 0, StatusInvalidPost
	}

	// The author's token was already validated, but only the signature is
	// authenticated; confirm the nickname still denotes a real account.
	if _, err := s.repos.Accounts(s.db).GetByNickname(ctx, author); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, StatusUserNotFound
		}
		return 0, StatusUnknownError
	}

	id, err := s.repos.Posts(s.db).Create(ctx, author, title, content)
	if err != nil {
		return 0, StatusUnknownError
	}
	return id, StatusOK
}

// Get returns a single post enriched with its full like/dislike sets.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, Status) {
	if !validate.CheckID(id) {
		return nil, StatusIncorrectID
	}

	post, err := s.repos.Posts(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, StatusPostNotFound
		}
		return nil, StatusUnknownError
	}

	if st := s.attachRatings(ctx, post); st != StatusOK {
		return nil, st
	}
	return post, StatusOK
}

// List returns up to limit posts, newest id first, each enriched with its
// rating sets.
func (s *PostService) List(ctx context.Context, limit int) ([]*models.Post, Status) {
	if !validate.CheckLimit(limit) {
		return nil, StatusIncorrectLimit
	}

	posts, err := s.repos.Posts(s.db).List(ctx, limit)
	if err != nil {
		return nil, StatusUnknownError
	}

	for _, post := range posts {
		if st := s.attachRatings(ctx, post); st != StatusOK {
			return nil, st
		}
	}
	return posts, StatusOK
}

// Edit changes the supplied fields of the caller's own post. Calling it with
// neither field is a successful no-op.
func (s *PostService) Edit(ctx context.Context, id int64, nickname, newTitle, newContent string) Status {
	if newTitle == "" && newContent == "" {
		return StatusOK
	}
	if !validate.CheckPost(newTitle, newContent) {
		return StatusInvalidPost
	}
	if !validate.CheckID(id) {
		return StatusIncorrectID
	}

	post, err := s.repos.Posts(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return StatusPostNotFound
		}
		return StatusUnknownError
	}
	if post.Author != nickname {
		return StatusNoAccess
	}

	if err := s.repos.Posts(s.db).Update(ctx, id, newTitle, newContent); err != nil {
		return StatusUnknownError
	}
	return StatusOK
}

// Delete removes the caller's own post together with all of its ratings,
// atomically.
func (s *PostService) Delete(ctx context.Context, id int64, nickname string) Status {
	if !validate.CheckID(id) {
		return StatusIncorrectID
	}

	post, err := s.repos.Posts(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return StatusPostNotFound
		}
		return StatusUnknownError
	}
	if post.Author != nickname {
		return StatusNoAccess
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Ratings(tx).DeleteForPost(ctx, id); err != nil {
			return err
		}
		return s.repos.Posts(tx).Delete(ctx, id)
	})
	if err != nil {
		return StatusUnknownError
	}
	return StatusOK
}

// SetRate records the caller's vote on a post, replacing any previous vote
// of the opposite polarity. Rating one's own post is rejected.
func (s *PostService) SetRate(ctx context.Context, id int64, nickname string, isLike bool) Status {
	if _, st := s.ratedPost(ctx, id, nickname); st != StatusOK {
		return st
	}

	if err := s.repos.Ratings(s.db).Set(ctx, id, nickname, isLike); err != nil {
		return StatusUnknownError
	}
	return StatusOK
}

// UnsetRate removes the caller's vote from a post; absent votes are a no-op.
func (s *PostService) UnsetRate(ctx context.Context, id int64, nickname string) Status {
	if _, st := s.ratedPost(ctx, id, nickname); st != StatusOK {
		return st
	}

	if err := s.repos.Ratings(s.db).Unset(ctx, id, nickname); err != nil {
		return StatusUnknownError
	}
	return StatusOK
}

// ratedPost fetches the post a rating operation targets and applies the
// shared checks: valid id, post exists, caller is not the author.
func (s *PostService) ratedPost(ctx context.Context, id int64, nickname string) (*models.Post, Status) {
	if !validate.CheckID(id) {
		return nil, StatusIncorrectID
	}

	post, err := s.repos.Posts(s.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, StatusPostNotFound
		}
		return nil, StatusUnknownError
	}
	if post.Author == nickname {
		return nil, StatusNoAccess
	}
	return post, StatusOK
}

func (s *PostService) attachRatings(ctx context.Context, post *models.Post) Status {
	likes, dislikes, err := s.repos.Ratings(s.db).ListForPost(ctx, post.ID)
	if err != nil {
		return StatusUnknownError
	}
	post.Likes = likes
	post.Dislikes = dislikes
	return StatusOK
}
