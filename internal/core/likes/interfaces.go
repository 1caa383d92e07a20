package likes

import "context"

// Service defines the business logic interface for likes
type Service interface {
	// ToggleLike likes the subject if the user hasn't, otherwise removes the like
	// Returns the resulting state so clients can reconcile optimistic updates
	ToggleLike(ctx context.Context, username string, subject Subject) (*Result, error)
}

// Repository defines the data access interface for likes
type Repository interface {
	// Toggle inserts or deletes the user's like and adjusts the subject's
	// like_count in one transaction
	Toggle(ctx context.Context, username string, subject Subject) (*Result, error)

	// SubjectExists checks whether the post or comment exists
	SubjectExists(ctx context.Context, subject Subject) (bool, error)
}
