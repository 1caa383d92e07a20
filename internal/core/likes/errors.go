package likes

import "errors"

var (
	// ErrSubjectNotFound indicates the post/comment being liked doesn't exist
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrInvalidSubject indicates the subject type or id is malformed
	ErrInvalidSubject = errors.New("invalid subject")

	// ErrNotAuthorized indicates the caller is not authenticated
	ErrNotAuthorized = errors.New("not authorized")
)
