package posts

import (
	"Ignite/internal/utils"
	"context"
	"fmt"
	"log/slog"
)

const (
	maxTitleGraphemes   = 300
	maxContentGraphemes = 50000
)

type postService struct {
	repo   Repository
	logger *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:   repo,
		logger: logger,
	}
}

// CreatePost validates input, strips markup and stores the post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if req.Username == "" {
		return nil, ErrNotAuthorized
	}

	title := utils.SanitizeText(req.Title)
	content := utils.SanitizeText(req.Content)

	if title == "" {
		return nil, NewValidationError("title", "required")
	}
	if utils.GraphemeLen(title) > maxTitleGraphemes {
		return nil, NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleGraphemes))
	}
	if content == "" {
		return nil, NewValidationError("content", "required")
	}
	if utils.GraphemeLen(content) > maxContentGraphemes {
		return nil, NewValidationError("content", fmt.Sprintf("must be at most %d characters", maxContentGraphemes))
	}

	post := &Post{
		Title:    title,
		Content:  content,
		Username: req.Username,
		UserRole: req.UserRole,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "id", post.ID, "author", post.Username)
	return post, nil
}

// GetPost retrieves a post by ID
func (s *postService) GetPost(ctx context.Context, id int64, viewer string) (*Post, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	post, err := s.repo.GetByID(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return post, nil
}
