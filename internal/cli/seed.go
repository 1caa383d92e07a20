package cli

import (
	"Ignite/internal/auth"
	"Ignite/internal/client"
	"Ignite/internal/core/session"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
)

var seedUsers = []string{
	"ada", "grace", "linus", "barbara", "ken", "margaret",
	"dennis", "frances", "edsger", "radia", "donald", "hedy",
}

var seedRoots = []string{
	"Great write-up, thanks for sharing.",
	"I ran into the same issue last week and ended up rolling back.",
	"Does anyone have numbers on how this behaves under load?",
	"Bookmarking this for the next planning meeting.",
	"The second half of the post is the interesting part.",
	"Strongly disagree with the conclusion, but the data is solid.",
	"Is there a follow-up planned?",
	"This matches what we saw in production.",
}

var seedReplies = []string{
	"Agreed.",
	"Same here, we hit it on the staging cluster first.",
	"Can you share the config you used?",
	"Not sure that holds once caching is involved.",
	"Good point, I hadn't considered that.",
	"+1, would love to see the follow-up.",
}

func (a *app) newSeedCommand() *cobra.Command {
	var (
		count      int
		replyRatio float64
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a post with a sample comment thread",
		Long: `Mint development tokens for a set of users and use them to create a post,
root comments, and replies through the API. Needs the server's JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--comments must not be negative")
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

			signer, err := auth.NewSigner(a.cfg.JWTSecret, a.cfg.JWTIssuer, a.cfg.TokenTTL)
			if err != nil {
				return err
			}

			clients := make([]*client.Client, len(seedUsers))
			for i, username := range seedUsers {
				token, err := signer.Issue(username, auth.RoleUser)
				if err != nil {
					return err
				}
				sess := session.New()
				sess.Acquire(session.Credentials{Token: token, Username: username, Role: auth.RoleUser})
				clients[i] = a.client(sess)
			}

			post, err := clients[0].CreatePost(ctx, "Seeded discussion", "A post with a generated comment thread.")
			if err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}

			var roots []int64
			replies := 0
			for i := 0; i < count; i++ {
				c := clients[rng.IntN(len(clients))]

				var parentID *int64
				content := seedRoots[rng.IntN(len(seedRoots))]
				if len(roots) > 0 && rng.Float64() < replyRatio {
					parent := roots[rng.IntN(len(roots))]
					parentID = &parent
					content = seedReplies[rng.IntN(len(seedReplies))]
				}

				created, err := c.CreateComment(ctx, post.ID, content, parentID)
				if err != nil {
					return fmt.Errorf("failed to create comment %d: %w", i+1, err)
				}
				if parentID == nil {
					roots = append(roots, created.ID)
				} else {
					replies++
				}

				// Likes from a few distinct users; a repeat liker would toggle the like off
				for _, liker := range rng.Perm(len(clients))[:rng.IntN(4)] {
					if _, err := clients[liker].ToggleCommentLike(ctx, created.ID); err != nil {
						return fmt.Errorf("failed to like comment %d: %w", created.ID, err)
					}
				}
			}

			fmt.Fprintf(out, "Seeded post #%d with %d root comments and %d replies\n", post.ID, len(roots), replies)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "comments", "n", 25, "number of comments to create")
	cmd.Flags().Float64Var(&replyRatio, "reply-ratio", 0.4, "share of comments posted as replies")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	return cmd
}
