// Package posts provides a PostgreSQL-backed repository for text posts.
// Post ids come from the table's identity column, so concurrent creates can
// never collide.
package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
)

// PostgresRepository implements post storage over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new post and returns its database-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, author, title, content string) (int64, error) {
	query := `
		INSERT INTO posts (author_nickname, title, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, author, title, content).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Get returns the post row for the given id, without its rating sets.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Post, error) {
	query := `
		SELECT id, author_nickname, title, content, posted_at
		FROM posts
		WHERE id = $1
	`
	post := &models.Post{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Author, &post.Title, &post.Content, &post.PostedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// List returns up to limit posts ordered newest-id-first, without rating sets.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	query := `
		SELECT id, author_nickname, title, content, posted_at
		FROM posts
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0, limit)
	for rows.Next() {
		post := &models.Post{}
		if err := rows.Scan(&post.ID, &post.Author, &post.Title, &post.Content, &post.PostedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update changes the supplied fields of a post. An empty string leaves the
// corresponding field untouched.
func (r *PostgresRepository) Update(ctx context.Context, id int64, newTitle, newContent string) error {
	query := `
		UPDATE posts
		SET title   = CASE WHEN $2 <> '' THEN $2 ELSE title END,
		    content = CASE WHEN $3 <> '' THEN $3 ELSE content END
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, newTitle, newContent); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a post row. Rating rows are removed separately by the
// ratings repository inside the same transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM posts
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
