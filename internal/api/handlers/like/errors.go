package like

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/core/likes"
	"errors"
	"log"
	"net/http"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, likes.ErrSubjectNotFound):
		handlers.WriteError(w, http.StatusNotFound, "SubjectNotFound", "Post or comment not found")
	case errors.Is(err, likes.ErrInvalidSubject):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidSubject", "The subject reference is invalid or malformed")
	case errors.Is(err, likes.ErrNotAuthorized):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
	default:
		log.Printf("Like toggle error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to toggle like")
	}
}
