package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Ignite/internal/api/routes"
	"Ignite/internal/auth"
	"Ignite/internal/config"
	"Ignite/internal/core/comments"
	"Ignite/internal/core/likes"
	"Ignite/internal/core/posts"
	"Ignite/internal/db/migrations"
	postgresRepo "Ignite/internal/db/postgres"
	"Ignite/internal/logging"
)

const (
	// subjectCacheSize bounds how many known posts/comments the like validator remembers
	subjectCacheSize = 10000
	subjectCacheTTL  = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Fatal("Failed to configure logging:", err)
	}
	defer logCloser.Close()
	logging.Install(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	logger.Info("migrations completed")

	// Initialize repositories and services
	postRepo := postgresRepo.NewPostRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	likeRepo := postgresRepo.NewLikeRepository(db)

	postService := posts.NewPostService(postRepo, logger)
	commentService := comments.NewCommentService(commentRepo, postRepo, logger)
	subjectValidator := likes.NewCachingSubjectValidator(likeRepo, subjectCacheSize, subjectCacheTTL, logger)
	likeService := likes.NewLikeService(likeRepo, subjectValidator, logger)

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if err != nil {
		log.Fatal("Failed to create token verifier:", err)
	}

	handler := routes.NewRouter(routes.Services{
		Posts:    postService,
		Comments: commentService,
		Likes:    likeService,
		Verifier: signer,
	}, routes.RouterConfig{
		AllowedOrigins:    cfg.CORSOrigins,
		RequestsPerMinute: cfg.RequestsPerMinute,
		WritesPerMinute:   cfg.WritesPerMinute,
		AccessLog:         cfg.AccessLog,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Ignite API starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
