package routes

import (
	"Ignite/internal/api/handlers/comments"
	"Ignite/internal/api/middleware"
	commentsCore "Ignite/internal/core/comments"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment listing and creation endpoints
// Reads use optional auth so likedByCurrentUser reflects the viewer
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, authMiddleware *middleware.AuthMiddleware, writeLimit func(http.Handler) http.Handler) {
	listHandler := comments.NewListHandler(service)
	createHandler := comments.NewCreateHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}/comments", listHandler.HandleListRoots)
	r.With(authMiddleware.OptionalAuth).Get("/api/comments/{commentID}/replies", listHandler.HandleListReplies)

	r.With(authMiddleware.RequireAuth, writeLimit).Post("/api/posts/{postID}/comments", createHandler.HandleCreate)
}
