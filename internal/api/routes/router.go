package routes

import (
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/comments"
	"Ignite/internal/core/likes"
	"Ignite/internal/core/posts"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services bundles what the router dispatches to
type Services struct {
	Posts    posts.Service
	Comments comments.Service
	Likes    likes.Service
	Verifier middleware.TokenVerifier
}

// RouterConfig holds HTTP-level settings
type RouterConfig struct {
	AllowedOrigins    []string
	RequestsPerMinute int
	WritesPerMinute   int
	AccessLog         bool
	// TrustProxyHeaders resolves the client address from X-Forwarded-For and
	// X-Real-IP; only enable behind a proxy that overwrites them
	TrustProxyHeaders bool
}

// NewRouter builds the full HTTP handler of the API
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	if cfg.AccessLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(chiMiddleware.RealIP)
	}

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.AllowedOrigins))
	}

	if cfg.RequestsPerMinute > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RequestsPerMinute, time.Minute).Middleware)
	}

	writeLimit := func(next http.Handler) http.Handler { return next }
	if cfg.WritesPerMinute > 0 {
		writeLimit = middleware.NewRateLimiter(cfg.WritesPerMinute, time.Minute).Middleware
	}

	authMiddleware := middleware.NewAuthMiddleware(svc.Verifier)

	RegisterPostRoutes(r, svc.Posts, authMiddleware, writeLimit)
	RegisterCommentRoutes(r, svc.Comments, authMiddleware, writeLimit)
	RegisterLikeRoutes(r, svc.Likes, authMiddleware, writeLimit)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// corsMiddleware allows browser clients from the configured origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})
}
