package post

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/core/posts"
	"errors"
	"log"
	"net/http"
)

// handleServiceError maps post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError
	switch {
	case errors.As(err, &valErr):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Error())
	case posts.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, posts.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
	default:
		log.Printf("Post handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
