package postgres

import (
	"Ignite/internal/core/likes"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// subjectTable maps a subject type to the table holding its like_count
func subjectTable(t likes.SubjectType) (string, error) {
	switch t {
	case likes.SubjectPost:
		return "posts", nil
	case likes.SubjectComment:
		return "comments", nil
	default:
		return "", likes.ErrInvalidSubject
	}
}

// Toggle removes the user's like if present, otherwise adds one, and adjusts
// the subject's like_count in the same transaction
func (r *postgresLikeRepo) Toggle(ctx context.Context, username string, subject likes.Subject) (*likes.Result, error) {
	table, err := subjectTable(subject.Type)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM likes WHERE username = $1 AND subject_type = $2 AND subject_id = $3`,
		username, string(subject.Type), subject.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to delete like: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check delete result: %w", err)
	}

	result := &likes.Result{}
	delta := -1
	if removed == 0 {
		res, err = tx.ExecContext(ctx,
			`INSERT INTO likes (username, subject_type, subject_id) VALUES ($1, $2, $3)
			 ON CONFLICT ON CONSTRAINT unique_user_subject DO NOTHING`,
			username, string(subject.Type), subject.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert like: %w", err)
		}
		added, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check insert result: %w", err)
		}
		// A concurrent toggle may have inserted first; the like exists either way
		result.Liked = true
		delta = int(added)
	}

	err = tx.QueryRowContext(ctx,
		`UPDATE `+table+` SET like_count = GREATEST(like_count + $1, 0) WHERE id = $2 RETURNING like_count`,
		delta, subject.ID,
	).Scan(&result.LikeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, likes.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update like count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit like: %w", err)
	}
	return result, nil
}

// SubjectExists checks whether the post or comment exists
func (r *postgresLikeRepo) SubjectExists(ctx context.Context, subject likes.Subject) (bool, error) {
	table, err := subjectTable(subject.Type)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, subject.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check subject: %w", err)
	}
	return exists, nil
}
