package thread

import "errors"

// ErrEmptyContent is returned when a comment has no text after trimming.
// No request is sent and the store is untouched.
var ErrEmptyContent = errors.New("comment content is empty")
