package comments

import (
	"Ignite/internal/api/middleware"
	"Ignite/internal/core/comments"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommentService struct {
	createFunc  func(author comments.Author, req comments.CreateCommentRequest) (*comments.Comment, error)
	rootsFunc   func(req comments.ListRootsRequest) (*comments.Page, error)
	repliesFunc func(req comments.ListRepliesRequest) (*comments.Page, error)
	createCalls int
}

func (m *mockCommentService) GetRootComments(ctx context.Context, req comments.ListRootsRequest) (*comments.Page, error) {
	return m.rootsFunc(req)
}

func (m *mockCommentService) GetReplies(ctx context.Context, req comments.ListRepliesRequest) (*comments.Page, error) {
	return m.repliesFunc(req)
}

func (m *mockCommentService) CreateComment(ctx context.Context, author comments.Author, req comments.CreateCommentRequest) (*comments.Comment, error) {
	m.createCalls++
	return m.createFunc(author, req)
}

func serve(method, pattern, target string, h http.HandlerFunc, body string, user string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if user != "" {
		req = req.WithContext(middleware.SetTestUser(req.Context(), user, "USER"))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHandleCreate_Root(t *testing.T) {
	svc := &mockCommentService{
		createFunc: func(author comments.Author, req comments.CreateCommentRequest) (*comments.Comment, error) {
			assert.Equal(t, "bob", author.Username)
			assert.Equal(t, "USER", author.Role)
			assert.Nil(t, req.ParentID)
			return &comments.Comment{ID: 9, PostID: req.PostID, Content: req.Content, Username: author.Username}, nil
		},
	}
	h := NewCreateHandler(svc)

	w := serve(http.MethodPost, "/api/posts/{postID}/comments", "/api/posts/5/comments", h.HandleCreate, "  first!  ", "bob")

	require.Equal(t, http.StatusCreated, w.Code)
	var got comments.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, int64(5), got.PostID)
}

func TestHandleCreate_RejectsBadInput(t *testing.T) {
	svc := &mockCommentService{}
	h := NewCreateHandler(svc)

	tests := []struct {
		name   string
		target string
		user   string
		body   string
		status int
	}{
		{"bad post id", "/api/posts/zero/comments", "bob", "x", http.StatusBadRequest},
		{"negative parent", "/api/posts/5/comments?parentId=-1", "bob", "x", http.StatusBadRequest},
		{"garbage parent", "/api/posts/5/comments?parentId=abc", "bob", "x", http.StatusBadRequest},
		{"anonymous", "/api/posts/5/comments", "", "x", http.StatusUnauthorized},
		{"oversized body", "/api/posts/5/comments", "bob", strings.Repeat("a", maxCommentBodyBytes+1), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(http.MethodPost, "/api/posts/{postID}/comments", tt.target, h.HandleCreate, tt.body, tt.user)
			assert.Equal(t, tt.status, w.Code)
		})
	}
	assert.Zero(t, svc.createCalls)
}

func TestHandleCreate_ServiceErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{comments.ErrPostNotFound, http.StatusNotFound, "PostNotFound"},
		{comments.ErrParentNotFound, http.StatusNotFound, "ParentNotFound"},
		{comments.ErrContentTooLong, http.StatusBadRequest, "ContentTooLong"},
		{comments.ErrContentEmpty, http.StatusBadRequest, "InvalidRequest"},
		{comments.ErrParentMismatch, http.StatusBadRequest, "InvalidRequest"},
		{fmt.Errorf("wrapped: %w", comments.ErrNotAuthorized), http.StatusUnauthorized, "AuthenticationRequired"},
		{errors.New("connection refused"), http.StatusInternalServerError, "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			svc := &mockCommentService{
				createFunc: func(comments.Author, comments.CreateCommentRequest) (*comments.Comment, error) {
					return nil, tt.err
				},
			}
			h := NewCreateHandler(svc)

			w := serve(http.MethodPost, "/api/posts/{postID}/comments", "/api/posts/5/comments?parentId=2", h.HandleCreate, "x", "bob")

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestHandleListRoots_PassesPaging(t *testing.T) {
	var got comments.ListRootsRequest
	svc := &mockCommentService{
		rootsFunc: func(req comments.ListRootsRequest) (*comments.Page, error) {
			got = req
			return &comments.Page{Content: []*comments.Comment{}, Page: req.Page, TotalPages: 0}, nil
		},
	}
	h := NewListHandler(svc)

	w := serve(http.MethodGet, "/api/posts/{postID}/comments", "/api/posts/3/comments?page=1&size=20", h.HandleListRoots, "", "carol")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, comments.ListRootsRequest{Viewer: "carol", PostID: 3, Page: 1, Size: 20}, got)
	assert.JSONEq(t, `{"content":[],"page":1,"totalPages":0}`, w.Body.String())
}

func TestHandleListReplies_InvalidPagination(t *testing.T) {
	svc := &mockCommentService{
		repliesFunc: func(req comments.ListRepliesRequest) (*comments.Page, error) {
			return nil, comments.ErrInvalidPagination
		},
	}
	h := NewListHandler(svc)

	w := serve(http.MethodGet, "/api/comments/{commentID}/replies", "/api/comments/3/replies?size=5000", h.HandleListReplies, "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", errorCode(t, w))
}
