// Package ratings provides a PostgreSQL-backed repository for per-user
// like/dislike votes on posts. The (post_id, nickname) primary key makes a
// simultaneous like and dislike for the same pair unrepresentable.
package ratings

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/dbx"
)

// PostgresRepository implements rating storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListForPost returns the nicknames that liked and disliked the given post.
func (r *PostgresRepository) ListForPost(ctx context.Context, postID int64) (likes, dislikes []string, err error) {
	query := `
		SELECT nickname, is_like
		FROM post_ratings
		WHERE post_id = $1
		ORDER BY nickname
	`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	likes = []string{}
	dislikes = []string{}
	for rows.Next() {
		var nickname string
		var isLike bool
		if err := rows.Scan(&nickname, &isLike); err != nil {
			return nil, nil, fmt.Errorf("db error: %w", err)
		}
		if isLike {
			likes = append(likes, nickname)
		} else {
			dislikes = append(dislikes, nickname)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("db error: %w", err)
	}
	return likes, dislikes, nil
}

// Set records a vote, replacing the pair's previous polarity if one exists.
func (r *PostgresRepository) Set(ctx context.Context, postID int64, nickname string, isLike bool) error {
	query := `
		INSERT INTO post_ratings (post_id, nickname, is_like)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, nickname) DO UPDATE SET is_like = EXCLUDED.is_like
	`
	if _, err := r.db.ExecContext(ctx, query, postID, nickname, isLike); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Unset removes the pair's vote if present; removing a missing vote is a no-op.
func (r *PostgresRepository) Unset(ctx context.Context, postID int64, nickname string) error {
	query := `
		DELETE FROM post_ratings
		WHERE post_id = $1 AND nickname = $2
	`
	if _, err := r.db.ExecContext(ctx, query, postID, nickname); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteForPost removes all votes of a post; used when the post is deleted.
func (r *PostgresRepository) DeleteForPost(ctx context.Context, postID int64) error {
	query := `
		DELETE FROM post_ratings
		WHERE post_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
