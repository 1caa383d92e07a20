package cli

import (
	"Ignite/internal/core/comments"
	"Ignite/internal/core/thread"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func parsePostID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("post id must be a positive integer, got %q", arg)
	}
	return id, nil
}

func (a *app) newPostCommand() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session()
			if err != nil {
				return err
			}
			post, err := a.client(sess).CreatePost(cmd.Context(), title, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created post #%d %q\n", post.ID, post.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "post title (required)")
	cmd.Flags().StringVar(&content, "content", "", "post body")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func (a *app) newCommentsCommand() *cobra.Command {
	var (
		pages   int
		size    int
		replies bool
	)

	cmd := &cobra.Command{
		Use:   "comments POST_ID",
		Short: "Show a post's comment thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			section, err := a.openSection(ctx, postID)
			if err != nil {
				return err
			}

			for i := 0; i < pages && section.State().HasMoreRoots(); i++ {
				if err := section.LoadMoreRootComments(ctx, size); err != nil {
					return err
				}
			}

			if replies {
				for _, root := range section.Roots() {
					id, ok := root.ID()
					if !ok || root.ReplyCount == 0 {
						continue
					}
					if err := section.ExpandReplies(ctx, id); err != nil {
						return err
					}
				}
			}

			printThread(cmd.OutOrStdout(), section)
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of root comment pages to load")
	cmd.Flags().IntVar(&size, "size", comments.DefaultPageSize, "root comments per page")
	cmd.Flags().BoolVarP(&replies, "replies", "r", false, "expand replies of every root comment")

	return cmd
}

func (a *app) newCommentCommand() *cobra.Command {
	var parent int64

	cmd := &cobra.Command{
		Use:   "comment POST_ID TEXT...",
		Short: "Comment on a post, or reply with --parent",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			section, err := a.openSection(cmd.Context(), postID)
			if err != nil {
				return err
			}

			var parentID *int64
			if parent > 0 {
				parentID = &parent
			}

			created, err := section.AddComment(cmd.Context(), strings.Join(args[1:], " "), parentID)
			if err != nil {
				return signInRequired(cmd.OutOrStdout(), err)
			}

			id, _ := created.ID()
			if parentID != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Replied to #%d with #%d\n", *parentID, id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Commented #%d on post #%d\n", id, postID)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&parent, "parent", 0, "id of the comment to reply to")

	return cmd
}

func (a *app) newLikeCommand() *cobra.Command {
	var commentID int64

	cmd := &cobra.Command{
		Use:   "like POST_ID",
		Short: "Toggle a like on a post, or on one of its comments with --comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			section, err := a.openSection(ctx, postID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if commentID <= 0 {
				if err := section.ToggleLike(ctx); err != nil {
					return signInRequired(out, err)
				}
				post := section.Post()
				fmt.Fprintf(out, "Post #%d: %s (%d likes)\n", postID, likedLabel(post.Liked), post.LikeCount)
				return nil
			}

			// Load the first page so the comment's state can be shown afterwards
			if err := section.LoadRootComments(ctx, 0, comments.DefaultPageSize); err != nil {
				return err
			}
			if err := section.LikeComment(ctx, commentID); err != nil {
				return signInRequired(out, err)
			}
			for _, c := range section.Comments() {
				if id, ok := c.ID(); ok && id == commentID {
					fmt.Fprintf(out, "Comment #%d: %s (%d likes)\n", commentID, likedLabel(c.LikedByCurrentUser), c.LikeCount)
					return nil
				}
			}
			fmt.Fprintf(out, "Toggled like on comment #%d\n", commentID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&commentID, "comment", 0, "id of the comment to like")

	return cmd
}

func likedLabel(liked bool) string {
	if liked {
		return "liked"
	}
	return "not liked"
}

func printThread(w io.Writer, section *thread.Section) {
	post := section.Post()
	fmt.Fprintf(w, "Post #%d: %d comments, %d likes\n", post.ID, post.CommentCount, post.LikeCount)

	roots := section.Roots()
	if len(roots) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	for _, root := range roots {
		printComment(w, root, "")
		id, ok := root.ID()
		if !ok || section.Expansion(id) != thread.Expanded {
			continue
		}
		for _, reply := range section.Replies(id) {
			printComment(w, reply, "    ")
		}
	}
	if section.State().HasMoreRoots() {
		fmt.Fprintln(w, "More comments available, use --pages.")
	}
}

func printComment(w io.Writer, c thread.Comment, indent string) {
	fmt.Fprintf(w, "%s[%s] %s: %s (%d likes, %d replies)\n",
		indent, c.Key, c.Username, c.Content, c.LikeCount, c.ReplyCount)
}
