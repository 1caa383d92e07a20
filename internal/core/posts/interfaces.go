package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates and stores a new feed post
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// GetPost retrieves a post with viewer state
	// viewer may be empty for anonymous reads
	GetPost(ctx context.Context, id int64, viewer string) (*Post, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id int64, viewer string) (*Post, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
