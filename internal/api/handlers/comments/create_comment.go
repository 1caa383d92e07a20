package comments

import (
	"Ignite/internal/api/handlers"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/comments"
	"errors"
	"io"
	"net/http"
	"strconv"
)

// maxCommentBodyBytes caps the raw request body; the service enforces the grapheme limit
const maxCommentBodyBytes = 64 * 1024

// CreateHandler handles comment and reply creation
type CreateHandler struct {
	service comments.Service
}

// NewCreateHandler creates a new create comment handler
func NewCreateHandler(service comments.Service) *CreateHandler {
	return &CreateHandler{service: service}
}

// HandleCreate handles POST /api/posts/{postID}/comments[?parentId=]
// The request body is the raw comment text
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, err := handlers.IDParam(r, "postID")
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a positive integer")
		return
	}

	var parentID *int64
	if raw := r.URL.Query().Get("parentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "parentId must be a positive integer")
			return
		}
		parentID = &id
	}

	username := middleware.GetUsername(r)
	if username == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCommentBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "ContentTooLong", "Comment body is too large")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	comment, err := h.service.CreateComment(r.Context(),
		comments.Author{Username: username, Role: middleware.GetUserRole(r)},
		comments.CreateCommentRequest{
			PostID:   postID,
			ParentID: parentID,
			Content:  string(body),
		})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, comment)
}
