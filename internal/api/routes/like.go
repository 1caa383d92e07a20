package routes

import (
	"Ignite/internal/api/handlers/like"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/likes"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterLikeRoutes registers the like toggle endpoints; both require authentication
func RegisterLikeRoutes(r chi.Router, service likes.Service, authMiddleware *middleware.AuthMiddleware, writeLimit func(http.Handler) http.Handler) {
	h := like.NewToggleLikeHandler(service)

	r.With(authMiddleware.RequireAuth, writeLimit).Post("/api/posts/{postID}/like", h.HandleTogglePostLike)
	r.With(authMiddleware.RequireAuth, writeLimit).Post("/api/comments/{commentID}/like", h.HandleToggleCommentLike)
}
