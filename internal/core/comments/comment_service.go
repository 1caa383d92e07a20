package comments

import (
	"Ignite/internal/core/posts"
	"Ignite/internal/utils"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

const (
	// DefaultPageSize is used when a list request does not specify a size
	DefaultPageSize = 10

	// MaxPageSize bounds the number of comments returned in one page
	MaxPageSize = 100

	// maxCommentGraphemes is the maximum length for comment content in graphemes
	maxCommentGraphemes = 10000
)

// Service defines the business logic interface for comment operations
type Service interface {
	// GetRootComments returns one page of a post's top-level comments, newest first
	GetRootComments(ctx context.Context, req ListRootsRequest) (*Page, error)

	// GetReplies returns one page of direct replies to a comment, oldest first
	GetReplies(ctx context.Context, req ListRepliesRequest) (*Page, error)

	// CreateComment creates a new root comment or reply
	CreateComment(ctx context.Context, author Author, req CreateCommentRequest) (*Comment, error)
}

// commentService implements the Service interface
type commentService struct {
	commentRepo Repository
	postRepo    posts.Repository
	logger      *slog.Logger
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentRepo Repository, postRepo posts.Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		logger:      logger,
	}
}

// GetRootComments retrieves a page of top-level comments for a post
func (s *commentService) GetRootComments(ctx context.Context, req ListRootsRequest) (*Page, error) {
	size, err := normalizePage(req.Page, req.Size)
	if err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	total, err := s.commentRepo.CountRoots(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to count root comments: %w", err)
	}

	list, err := s.commentRepo.ListRoots(ctx, req.PostID, req.Viewer, size, req.Page*size)
	if err != nil {
		return nil, fmt.Errorf("failed to list root comments: %w", err)
	}

	return newPage(list, req.Page, size, total), nil
}

// GetReplies retrieves a page of direct replies to a comment
func (s *commentService) GetReplies(ctx context.Context, req ListRepliesRequest) (*Page, error) {
	size, err := normalizePage(req.Page, req.Size)
	if err != nil {
		return nil, err
	}

	if _, err := s.commentRepo.GetByID(ctx, req.CommentID); err != nil {
		return nil, err
	}

	total, err := s.commentRepo.CountReplies(ctx, req.CommentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}

	list, err := s.commentRepo.ListReplies(ctx, req.CommentID, req.Viewer, size, req.Page*size)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}

	return newPage(list, req.Page, size, total), nil
}

// CreateComment validates and stores a comment
// Replies must reference a parent on the same post
func (s *commentService) CreateComment(ctx context.Context, author Author, req CreateCommentRequest) (*Comment, error) {
	if author.Username == "" {
		return nil, ErrNotAuthorized
	}

	content := utils.SanitizeText(req.Content)
	if content == "" {
		return nil, ErrContentEmpty
	}
	if utils.GraphemeLen(content) > maxCommentGraphemes {
		return nil, ErrContentTooLong
	}

	exists, err := s.postRepo.Exists(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, ErrCommentNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to fetch parent comment: %w", err)
		}
		if parent.PostID != req.PostID {
			return nil, ErrParentMismatch
		}
	}

	comment := &Comment{
		PostID:   req.PostID,
		ParentID: req.ParentID,
		Content:  content,
		Username: author.Username,
		UserRole: author.Role,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.logger.Error("failed to create comment",
			"error", err,
			"post", req.PostID,
			"author", author.Username)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		"id", comment.ID,
		"post", comment.PostID,
		"parent", comment.ParentID,
		"author", comment.Username)

	return comment, nil
}

// normalizePage validates page bounds and applies the default size
func normalizePage(page, size int) (int, error) {
	if page < 0 {
		return 0, ErrInvalidPagination
	}
	if size == 0 {
		return DefaultPageSize, nil
	}
	if size < 0 || size > MaxPageSize {
		return 0, ErrInvalidPagination
	}
	return size, nil
}

func newPage(list []*Comment, page, size, total int) *Page {
	// Always return an empty slice, never nil (important for JSON serialization)
	if list == nil {
		list = []*Comment{}
	}
	return &Page{
		Content:    list,
		Page:       page,
		TotalPages: (total + size - 1) / size,
	}
}
