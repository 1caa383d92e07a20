package session

import (
	"errors"
	"net/url"
)

// SignInPath is where unauthenticated users are sent
const SignInPath = "/signin"

// Action is the human-readable name of a gated action, used in the sign-in prompt
type Action string

const (
	ActionLikePost     Action = "like posts"
	ActionLikeComment  Action = "like comments"
	ActionComment      Action = "comment"
	ActionReplyComment Action = "reply to comments"
)

// RedirectError reports that an action needs a signed-in user.
// Callers are expected to send the user to Path, show Message, and return to
// ReturnTo afterwards.
type RedirectError struct {
	Path     string
	Message  string
	ReturnTo string
}

// NewRedirectError builds the sign-in redirect for a gated action
func NewRedirectError(action Action, returnTo string) *RedirectError {
	return &RedirectError{
		Path:     SignInPath,
		Message:  "Please sign in to " + string(action),
		ReturnTo: returnTo,
	}
}

func (e *RedirectError) Error() string {
	return "sign in required: " + e.Message
}

// URL renders the redirect as a location with message and return target
func (e *RedirectError) URL() string {
	q := url.Values{}
	q.Set("message", e.Message)
	if e.ReturnTo != "" {
		q.Set("redirect", e.ReturnTo)
	}
	return e.Path + "?" + q.Encode()
}

// IsRedirect reports whether err carries a sign-in redirect
func IsRedirect(err error) bool {
	var r *RedirectError
	return errors.As(err, &r)
}

// AsRedirect extracts the sign-in redirect from err
func AsRedirect(err error) (*RedirectError, bool) {
	var r *RedirectError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
