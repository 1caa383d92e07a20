// Package like provides the HTTP handlers that toggle likes on posts and comments.
package like

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/likes"
	"net/http"
)

// ToggleLikeHandler handles like toggling
type ToggleLikeHandler struct {
	service likes.Service
}

// NewToggleLikeHandler creates a new toggle like handler
func NewToggleLikeHandler(service likes.Service) *ToggleLikeHandler {
	return &ToggleLikeHandler{service: service}
}

// HandleTogglePostLike handles POST /api/posts/{postID}/like
// Response: { "liked": bool, "likeCount": int }
func (h *ToggleLikeHandler) HandleTogglePostLike(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.IDParam(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a positive integer")
		return
	}
	h.toggle(w, r, likes.PostSubject(postID))
}

// HandleToggleCommentLike handles POST /api/comments/{commentID}/like
func (h *ToggleLikeHandler) HandleToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	commentID, err := handlers.IDParam(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "commentID must be a positive integer")
		return
	}
	h.toggle(w, r, likes.CommentSubject(commentID))
}

func (h *ToggleLikeHandler) toggle(w http.ResponseWriter, r *http.Request, subject likes.Subject) {
	// Extract authenticated user from request context (injected by auth middleware)
	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	result, err := h.service.ToggleLike(r.Context(), username, subject)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
