package postgres

import (
	"Ignite/internal/core/comments"
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var commentColumns = []string{
	"c.id", "c.post_id", "c.parent_id", "c.content",
	"c.author_username", "c.author_role",
	"c.like_count", "c.reply_count", "c.created_at",
}

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a comment and bumps the post's comment_count and, for
// replies, the parent's reply_count in one transaction
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	var parent interface{}
	if comment.ParentID != nil {
		parent = *comment.ParentID
	}

	insert, args, err := psql.Insert("comments").
		Columns("post_id", "parent_id", "content", "author_username", "author_role").
		Values(comment.PostID, parent, comment.Content, comment.Username, comment.UserRole).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build comment insert: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowContext(ctx, insert, args...).Scan(&comment.ID, &comment.CreatedAt); err != nil {
		if code, constraint, ok := pqCode(err); ok && code == pqForeignKeyViolation {
			if constraint == "comments_parent_id_fkey" {
				return comments.ErrParentNotFound
			}
			return comments.ErrPostNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE id = $1`,
		comment.PostID,
	); err != nil {
		return fmt.Errorf("failed to update post comment count: %w", err)
	}

	if comment.ParentID != nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE comments SET reply_count = reply_count + 1 WHERE id = $1`,
			*comment.ParentID,
		); err != nil {
			return fmt.Errorf("failed to update parent reply count: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comment: %w", err)
	}
	return nil
}

// GetByID retrieves a single comment without viewer state
func (r *postgresCommentRepo) GetByID(ctx context.Context, id int64) (*comments.Comment, error) {
	query, args, err := psql.Select(commentColumns...).
		Column(likedColumn("comment", "c", "")).
		From("comments c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment query: %w", err)
	}

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

// ListRoots retrieves top-level comments of a post, newest first
func (r *postgresCommentRepo) ListRoots(ctx context.Context, postID int64, viewer string, limit, offset int) ([]*comments.Comment, error) {
	builder := psql.Select(commentColumns...).
		Column(likedColumn("comment", "c", viewer)).
		From("comments c").
		Where(sq.Eq{"c.post_id": postID}).
		Where("c.parent_id IS NULL").
		OrderBy("c.created_at DESC", "c.id DESC")

	return r.list(ctx, paginate(builder, limit, offset))
}

// CountRoots counts top-level comments of a post
func (r *postgresCommentRepo) CountRoots(ctx context.Context, postID int64) (int, error) {
	return r.count(ctx, psql.Select("COUNT(*)").
		From("comments").
		Where(sq.Eq{"post_id": postID}).
		Where("parent_id IS NULL"))
}

// ListReplies retrieves direct replies to a comment, oldest first
func (r *postgresCommentRepo) ListReplies(ctx context.Context, parentID int64, viewer string, limit, offset int) ([]*comments.Comment, error) {
	builder := psql.Select(commentColumns...).
		Column(likedColumn("comment", "c", viewer)).
		From("comments c").
		Where(sq.Eq{"c.parent_id": parentID}).
		OrderBy("c.created_at ASC", "c.id ASC")

	return r.list(ctx, paginate(builder, limit, offset))
}

// CountReplies counts direct replies to a comment
func (r *postgresCommentRepo) CountReplies(ctx context.Context, parentID int64) (int, error) {
	return r.count(ctx, psql.Select("COUNT(*)").
		From("comments").
		Where(sq.Eq{"parent_id": parentID}))
}

func (r *postgresCommentRepo) list(ctx context.Context, builder sq.SelectBuilder) ([]*comments.Comment, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build comment query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*comments.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}

func (r *postgresCommentRepo) count(ctx context.Context, builder sq.SelectBuilder) (int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComment(row rowScanner) (*comments.Comment, error) {
	var comment comments.Comment
	var parent sql.NullInt64

	err := row.Scan(
		&comment.ID, &comment.PostID, &parent, &comment.Content,
		&comment.Username, &comment.UserRole,
		&comment.LikeCount, &comment.ReplyCount, &comment.CreatedAt,
		&comment.LikedByCurrentUser,
	)
	if err != nil {
		return nil, err
	}

	comment.ParentID = nullableInt64(parent)
	return &comment, nil
}

func paginate(builder sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	if offset > 0 {
		builder = builder.Offset(uint64(offset))
	}
	return builder
}
