package postgres

import (
	"Ignite/internal/core/posts"
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query, args, err := psql.Insert("posts").
		Columns("title", "content", "author_username", "author_role").
		Values(post.Title, post.Content, post.Username, post.UserRole).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build post insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post; viewer may be empty for anonymous reads
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64, viewer string) (*posts.Post, error) {
	query, args, err := psql.Select(
		"p.id", "p.title", "p.content", "p.author_username", "p.author_role",
		"p.comment_count", "p.like_count", "p.created_at",
	).
		Column(likedColumn("post", "p", viewer)).
		From("posts p").
		Where(sq.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post query: %w", err)
	}

	var post posts.Post
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&post.ID, &post.Title, &post.Content, &post.Username, &post.UserRole,
		&post.CommentCount, &post.LikeCount, &post.CreatedAt,
		&post.LikedByCurrentUser,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// Exists reports whether a post with id exists
func (r *postgresPostRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post: %w", err)
	}
	return exists, nil
}
