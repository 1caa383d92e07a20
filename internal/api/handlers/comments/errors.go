package comments

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/core/comments"
	"errors"
	"log"
	"net/http"
)

// handleServiceError maps service-layer errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")

	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, comments.ErrParentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ParentNotFound", "Parent comment not found")

	case comments.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", err.Error())

	case errors.Is(err, comments.ErrContentTooLong):
		handlers.WriteError(w, http.StatusBadRequest, "ContentTooLong", err.Error())

	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in comments handler: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
