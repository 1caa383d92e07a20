// Package cli implements the ignite command line client.
package cli

import (
	"Ignite/internal/auth"
	"Ignite/internal/client"
	"Ignite/internal/config"
	"Ignite/internal/core/session"
	"Ignite/internal/core/thread"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

// app holds the settings shared by every subcommand
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	apiURL  string
	token   string
	timeout time.Duration
}

// NewRootCommand builds the ignite command tree
// cfg supplies defaults for the persistent flags
func NewRootCommand(cfg *config.Config, logger *slog.Logger) *cobra.Command {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &app{cfg: cfg, logger: logger}

	rootCmd := &cobra.Command{
		Use:   "ignite",
		Short: "Ignite - read and write post comment threads",
		Long: `ignite talks to an Ignite API server.

It can mint development tokens, create posts, list a post's comment thread
with replies, write comments and replies, and like posts and comments.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api", cfg.APIURL, "Ignite API base URL (IGNITE_API_URL)")
	rootCmd.PersistentFlags().StringVar(&a.token, "token", cfg.Token, "bearer token of the signed-in user (IGNITE_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", cfg.RequestTimeout, "per-request timeout")

	rootCmd.AddCommand(a.newTokenCommand())
	rootCmd.AddCommand(a.newPostCommand())
	rootCmd.AddCommand(a.newCommentsCommand())
	rootCmd.AddCommand(a.newCommentCommand())
	rootCmd.AddCommand(a.newLikeCommand())
	rootCmd.AddCommand(a.newSeedCommand())

	return rootCmd
}

// session returns the client session for the configured token
// An empty token yields a signed-out session
func (a *app) session() (*session.Session, error) {
	sess := session.New()
	if a.token == "" {
		return sess, nil
	}
	claims, err := auth.ParseUnverified(a.token)
	if err != nil {
		return nil, fmt.Errorf("invalid --token: %w", err)
	}
	sess.Acquire(session.Credentials{
		Token:    a.token,
		Username: claims.Username(),
		Role:     claims.Role,
	})
	return sess, nil
}

func (a *app) client(sess *session.Session) *client.Client {
	return client.New(a.apiURL, sess, client.WithLogger(a.logger))
}

// openSection fetches the post and returns its comment section
func (a *app) openSection(ctx context.Context, postID int64) (*thread.Section, error) {
	sess, err := a.session()
	if err != nil {
		return nil, err
	}
	c := a.client(sess)

	post, err := c.GetPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post %d: %w", postID, err)
	}

	return thread.NewSection(thread.PostState{
		ID:           post.ID,
		CommentCount: post.CommentCount,
		LikeCount:    post.LikeCount,
		Liked:        post.LikedByCurrentUser,
	}, c, sess,
		thread.WithRequestTimeout(a.timeout),
		thread.WithLogger(a.logger),
		thread.WithReturnTo(fmt.Sprintf("/posts/%d", postID)),
	), nil
}

// signInRequired prints the redirect carried by err, if any
func signInRequired(w io.Writer, err error) error {
	if redirect, ok := session.AsRedirect(err); ok {
		fmt.Fprintf(w, "%s\nSign in at: %s\n", redirect.Message, redirect.URL())
	}
	return err
}
