package comments

import "errors"

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrPostNotFound indicates the post being commented on doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrParentNotFound indicates the parent comment of a reply doesn't exist
	ErrParentNotFound = errors.New("parent comment not found")

	// ErrParentMismatch indicates the parent comment belongs to a different post
	ErrParentMismatch = errors.New("parent comment belongs to a different post")

	// ErrContentTooLong indicates comment content exceeds 10000 graphemes
	ErrContentTooLong = errors.New("comment content exceeds 10000 graphemes")

	// ErrContentEmpty indicates comment content is empty
	ErrContentEmpty = errors.New("comment content is required")

	// ErrInvalidPagination indicates a negative page or an out of range page size
	ErrInvalidPagination = errors.New("invalid pagination parameters")

	// ErrNotAuthorized indicates the caller is not authenticated
	ErrNotAuthorized = errors.New("not authorized")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrParentNotFound) ||
		errors.Is(err, ErrPostNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrParentMismatch) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrContentEmpty) ||
		errors.Is(err, ErrInvalidPagination)
}
