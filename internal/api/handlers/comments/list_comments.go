// Package comments provides HTTP handlers for reading and writing post comments.
package comments

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/comments"
	"net/http"
)

// ListHandler serves root comment pages and reply pages
type ListHandler struct {
	service comments.Service
}

// NewListHandler creates a new handler for listing comments
func NewListHandler(service comments.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleListRoots handles GET /api/posts/{postID}/comments?page=&size=
// Returns top-level comments, newest first
func (h *ListHandler) HandleListRoots(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.IDParam(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a positive integer")
		return
	}

	page, size, ok := parsePaging(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetRootComments(r.Context(), comments.ListRootsRequest{
		PostID: postID,
		Viewer: middleware.GetUsername(r),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleListReplies handles GET /api/comments/{commentID}/replies?page=&size=
// Returns direct replies, oldest first
func (h *ListHandler) HandleListReplies(w http.ResponseWriter, r *http.Request) {
	commentID, err := handlers.IDParam(r, "commentID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "commentID must be a positive integer")
		return
	}

	page, size, ok := parsePaging(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetReplies(r.Context(), comments.ListRepliesRequest{
		CommentID: commentID,
		Viewer:    middleware.GetUsername(r),
		Page:      page,
		Size:      size,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

func parsePaging(w http.ResponseWriter, r *http.Request) (page, size int, ok bool) {
	page, err := handlers.IntQuery(r, "page", 0)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "page must be a valid integer")
		return 0, 0, false
	}
	size, err = handlers.IntQuery(r, "size", comments.DefaultPageSize)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "size must be a valid integer")
		return 0, 0, false
	}
	return page, size, true
}
