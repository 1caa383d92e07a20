package comments

import "context"

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts a comment and bumps the post's comment count and, for
	// replies, the parent's reply count in the same transaction.
	// Populates comment.ID and comment.CreatedAt.
	Create(ctx context.Context, comment *Comment) error

	// GetByID retrieves a single comment
	GetByID(ctx context.Context, id int64) (*Comment, error)

	// ListRoots retrieves top-level comments of a post, newest first
	// viewer may be empty; when set, LikedByCurrentUser is populated
	ListRoots(ctx context.Context, postID int64, viewer string, limit, offset int) ([]*Comment, error)

	// CountRoots counts top-level comments of a post
	CountRoots(ctx context.Context, postID int64) (int, error)

	// ListReplies retrieves direct replies to a comment, oldest first
	ListReplies(ctx context.Context, parentID int64, viewer string, limit, offset int) ([]*Comment, error)

	// CountReplies counts direct replies to a comment
	CountReplies(ctx context.Context, parentID int64) (int, error)
}
