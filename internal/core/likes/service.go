package likes

import (
	"context"
	"fmt"
	"log/slog"
)

type likeService struct {
	repo      Repository
	validator SubjectValidator
	logger    *slog.Logger
}

// NewLikeService creates a new like service
// validator may be nil, in which case the repository checks subject existence
func NewLikeService(repo Repository, validator SubjectValidator, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = repo
	}
	return &likeService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// ToggleLike flips the user's like on a post or comment
// Toggle logic:
//   - No like -> Create like, count + 1
//   - Existing like -> Delete like, count - 1
func (s *likeService) ToggleLike(ctx context.Context, username string, subject Subject) (*Result, error) {
	if username == "" {
		return nil, ErrNotAuthorized
	}
	if subject.Type != SubjectPost && subject.Type != SubjectComment {
		return nil, ErrInvalidSubject
	}
	if subject.ID <= 0 {
		return nil, ErrInvalidSubject
	}

	exists, err := s.validator.SubjectExists(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to check subject: %w", err)
	}
	if !exists {
		return nil, ErrSubjectNotFound
	}

	result, err := s.repo.Toggle(ctx, username, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.logger.Debug("like toggled",
		"user", username,
		"subject", subject.String(),
		"liked", result.Liked,
		"count", result.LikeCount)

	return result, nil
}
