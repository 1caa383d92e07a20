package routes

import (
	"Ignite/internal/api/handlers/post"
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/posts"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post read and create endpoints
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware, writeLimit func(http.Handler) http.Handler) {
	h := post.NewHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}", h.HandleGet)
	r.With(authMiddleware.RequireAuth, writeLimit).Post("/api/posts", h.HandleCreate)
}
