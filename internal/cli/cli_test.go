package cli

import (
	"Ignite/internal/api/routes"
	"Ignite/internal/auth"
	"Ignite/internal/config"
	"Ignite/internal/core/comments"
	"Ignite/internal/core/likes"
	"Ignite/internal/core/posts"
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "cli-test-secret"

// memoryAPI backs the API router with in-memory services for one post
type memoryAPI struct {
	mu           sync.Mutex
	comments     []*comments.Comment
	postLikes    map[string]bool
	commentLikes map[string]bool
	unlikes      int
}

func (m *memoryAPI) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	return &posts.Post{ID: 1, Title: req.Title, Content: req.Content, Username: req.Username}, nil
}

func (m *memoryAPI) GetPost(ctx context.Context, id int64, viewer string) (*posts.Post, error) {
	if id != 1 {
		return nil, posts.ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, liked := range m.postLikes {
		if liked {
			count++
		}
	}
	return &posts.Post{ID: 1, Title: "hello", CommentCount: len(m.comments), LikeCount: count, LikedByCurrentUser: m.postLikes[viewer]}, nil
}

func (m *memoryAPI) GetRootComments(ctx context.Context, req comments.ListRootsRequest) (*comments.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*comments.Comment{}
	for i := len(m.comments) - 1; i >= 0; i-- {
		if m.comments[i].ParentID == nil {
			c := *m.comments[i]
			out = append(out, &c)
		}
	}
	return &comments.Page{Content: out, Page: 0, TotalPages: 1}, nil
}

func (m *memoryAPI) GetReplies(ctx context.Context, req comments.ListRepliesRequest) (*comments.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*comments.Comment{}
	for _, c := range m.comments {
		if c.ParentID != nil && *c.ParentID == req.CommentID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return &comments.Page{Content: out, Page: 0, TotalPages: 1}, nil
}

func (m *memoryAPI) CreateComment(ctx context.Context, author comments.Author, req comments.CreateCommentRequest) (*comments.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.PostID != 1 {
		return nil, comments.ErrPostNotFound
	}
	c := &comments.Comment{
		ID:        int64(len(m.comments) + 1),
		PostID:    req.PostID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		Username:  author.Username,
		UserRole:  author.Role,
		CreatedAt: time.Now(),
	}
	if req.ParentID != nil {
		for _, p := range m.comments {
			if p.ID == *req.ParentID {
				p.ReplyCount++
			}
		}
	}
	m.comments = append(m.comments, c)
	cp := *c
	return &cp, nil
}

func (m *memoryAPI) ToggleLike(ctx context.Context, username string, subject likes.Subject) (*likes.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if subject.Type != likes.SubjectPost {
		for _, c := range m.comments {
			if c.ID != subject.ID {
				continue
			}
			key := fmt.Sprintf("%s/%d", username, c.ID)
			m.commentLikes[key] = !m.commentLikes[key]
			if m.commentLikes[key] {
				c.LikeCount++
			} else {
				c.LikeCount--
				m.unlikes++
			}
			return &likes.Result{Liked: m.commentLikes[key], LikeCount: c.LikeCount}, nil
		}
		return nil, likes.ErrSubjectNotFound
	}
	m.postLikes[username] = !m.postLikes[username]
	count := 0
	for _, liked := range m.postLikes {
		if liked {
			count++
		}
	}
	return &likes.Result{Liked: m.postLikes[username], LikeCount: count}, nil
}

type harness struct {
	cfg    *config.Config
	signer *auth.Signer
	api    *memoryAPI
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	signer, err := auth.NewSigner(testSecret, "", time.Hour)
	require.NoError(t, err)

	api := &memoryAPI{postLikes: map[string]bool{}, commentLikes: map[string]bool{}}
	srv := httptest.NewServer(routes.NewRouter(routes.Services{
		Posts:    api,
		Comments: api,
		Likes:    api,
		Verifier: signer,
	}, routes.RouterConfig{}))
	t.Cleanup(srv.Close)

	return &harness{
		signer: signer,
		api:    api,
		cfg: &config.Config{
			APIURL:         srv.URL,
			JWTSecret:      testSecret,
			TokenTTL:       time.Hour,
			RequestTimeout: 5 * time.Second,
		},
	}
}

func (h *harness) token(t *testing.T, username string) string {
	t.Helper()
	token, err := h.signer.Issue(username, auth.RoleUser)
	require.NoError(t, err)
	return token
}

func (h *harness) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := NewRootCommand(h.cfg, nil)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("token", "--user", "alice", "--role", "admin")
	require.NoError(t, err)

	claims, err := h.signer.Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username())
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	_, err = h.run("token")
	assert.Error(t, err, "--user is required")

	_, err = h.run("token", "--user", "alice", "--role", "root")
	assert.Error(t, err)
}

func TestCommentAndReplyThenList(t *testing.T) {
	h := newHarness(t)
	token := h.token(t, "alice")

	out, err := h.run("comment", "1", "first", "comment", "--token", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Commented #1 on post #1")

	out, err = h.run("comment", "1", "a reply", "--parent", "1", "--token", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Replied to #1 with #2")

	out, err = h.run("comments", "1", "--replies")
	require.NoError(t, err)
	assert.Contains(t, out, "Post #1: 2 comments")
	assert.Contains(t, out, "[1] alice: first comment (0 likes, 1 replies)")
	assert.Contains(t, out, "    [2] alice: a reply")

	out, err = h.run("comments", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "a reply", "replies stay collapsed without --replies")
}

func TestCommentSignedOutPrintsRedirect(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("comment", "1", "hello")
	require.Error(t, err)
	assert.Contains(t, out, "Please sign in to comment")
	assert.Contains(t, out, "/signin?")
	assert.Contains(t, out, "redirect=%2Fposts%2F1")
}

func TestLikePostAndComment(t *testing.T) {
	h := newHarness(t)
	token := h.token(t, "bob")

	out, err := h.run("like", "1", "--token", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Post #1: liked (1 likes)")

	out, err = h.run("like", "1", "--token", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Post #1: not liked (0 likes)")

	_, err = h.run("comment", "1", "likeable", "--token", token)
	require.NoError(t, err)

	out, err = h.run("like", "1", "--comment", "1", "--token", token)
	require.NoError(t, err)
	assert.Contains(t, out, "Comment #1: liked (1 likes)")
}

func TestInvalidArguments(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("comments", "abc")
	assert.Error(t, err)

	_, err = h.run("comments", "9")
	assert.Error(t, err, "unknown post")

	_, err = h.run("like", "1", "--token", "not-a-jwt")
	assert.Error(t, err)
}

func TestSeedCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("seed", "--comments", "10", "--reply-ratio", "0.5", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded post #1 with")

	out, err = h.run("comments", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Post #1: 10 comments")
}

func TestSeedCommand_NeverUnlikes(t *testing.T) {
	h := newHarness(t)

	for _, seed := range []string{"1", "2", "3"} {
		_, err := h.run("seed", "--comments", "40", "--seed", seed)
		require.NoError(t, err)
	}

	h.api.mu.Lock()
	defer h.api.mu.Unlock()
	assert.Zero(t, h.api.unlikes, "every seeded like comes from a different user")
	for _, c := range h.api.comments {
		assert.GreaterOrEqual(t, c.LikeCount, 0)
	}
}

func TestPostCommand(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("post", "--title", "Hi")
	assert.Error(t, err, "creating a post needs a token")

	out, err := h.run("post", "--title", "Hi", "--content", "there", "--token", h.token(t, "carol"))
	require.NoError(t, err)
	assert.Contains(t, out, `Created post #1 "Hi"`)
}
