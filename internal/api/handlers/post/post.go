// Package post provides HTTP handlers for reading and creating posts.
package post

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/posts"
	"encoding/json"
	"net/http"
)

// maxPostBodyBytes caps the JSON request body of a new post
const maxPostBodyBytes = 256 * 1024

// Handler serves post endpoints
type Handler struct {
	service posts.Service
}

// NewHandler creates a new post handler
func NewHandler(service posts.Service) *Handler {
	return &Handler{service: service}
}

// HandleGet handles GET /api/posts/{postID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.IDParam(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a positive integer")
		return
	}

	post, err := h.service.GetPost(r.Context(), postID, middleware.GetUsername(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleCreate handles POST /api/posts
// Request body: { "title": "...", "content": "..." }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPostBodyBytes)).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	req.Username = middleware.GetUsername(r)
	req.UserRole = middleware.GetUserRole(r)
	if req.Username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, post)
}
