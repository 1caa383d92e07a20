// Package client is the HTTP client of the Ignite REST API.
// It implements thread.Backend so a comment section can run against a live server.
package client

import (
	"Ignite/internal/core/comments"
	"Ignite/internal/core/likes"
	"Ignite/internal/core/posts"
	"Ignite/internal/core/session"
	"Ignite/internal/core/thread"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "IgniteClient/1.0"

var _ thread.Backend = (*Client)(nil)

// Client talks to one Ignite API server.
// Reads are retried on connection errors and 5xx responses; writes are sent once.
type Client struct {
	http    *http.Client
	reads   *retryablehttp.Client
	session *session.Session
	logger  *slog.Logger
	baseURL string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the pooled default transport
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
			c.reads.HTTPClient = hc
		}
	}
}

// WithLogger sets the logger used for retries
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
			c.reads.Logger = logger
		}
	}
}

// WithRetries sets how often a failed read is retried and the minimum wait between attempts
func WithRetries(retries int, minWait time.Duration) Option {
	return func(c *Client) {
		c.reads.RetryMax = retries
		c.reads.RetryWaitMin = minWait
		if c.reads.RetryWaitMax < minWait {
			c.reads.RetryWaitMax = minWait
		}
	}
}

// New creates a client for the API at baseURL, authenticating with sess
func New(baseURL string, sess *session.Session, opts ...Option) *Client {
	if sess == nil {
		sess = session.New()
	}

	hc := cleanhttp.DefaultPooledClient()

	reads := retryablehttp.NewClient()
	reads.HTTPClient = hc
	reads.RetryMax = 2
	reads.RetryWaitMin = 200 * time.Millisecond
	reads.RetryWaitMax = 2 * time.Second
	reads.ErrorHandler = retryablehttp.PassthroughErrorHandler
	reads.Logger = slog.Default()

	c := &Client{
		http:    hc,
		reads:   reads,
		session: sess,
		logger:  slog.Default(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetPost fetches a post with the caller's like state
func (c *Client) GetPost(ctx context.Context, postID int64) (*posts.Post, error) {
	var post posts.Post
	if err := c.get(ctx, fmt.Sprintf("/api/posts/%d", postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost publishes a new post
func (c *Client) CreatePost(ctx context.Context, title, content string) (*posts.Post, error) {
	body, err := json.Marshal(posts.CreatePostRequest{Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("failed to encode post: %w", err)
	}

	var post posts.Post
	if err := c.post(ctx, "/api/posts", nil, "application/json", body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListRootComments fetches one page of top-level comments, newest first
func (c *Client) ListRootComments(ctx context.Context, postID int64, page, size int) (*comments.Page, error) {
	var result comments.Page
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if err := c.get(ctx, path, pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListReplies fetches one page of direct replies to a comment, oldest first
func (c *Client) ListReplies(ctx context.Context, commentID int64, page, size int) (*comments.Page, error) {
	var result comments.Page
	path := fmt.Sprintf("/api/comments/%d/replies", commentID)
	if err := c.get(ctx, path, pageQuery(page, size), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateComment posts a comment, or a reply when parentID is set.
// The body is the raw comment text.
func (c *Client) CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (*comments.Comment, error) {
	var query url.Values
	if parentID != nil {
		query = url.Values{"parentId": {strconv.FormatInt(*parentID, 10)}}
	}

	var created comments.Comment
	path := fmt.Sprintf("/api/posts/%d/comments", postID)
	if err := c.post(ctx, path, query, "text/plain; charset=utf-8", []byte(content), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// TogglePostLike likes or unlikes a post and returns the resulting state
func (c *Client) TogglePostLike(ctx context.Context, postID int64) (*likes.Result, error) {
	var result likes.Result
	if err := c.post(ctx, fmt.Sprintf("/api/posts/%d/like", postID), nil, "", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleCommentLike likes or unlikes a comment and returns the resulting state
func (c *Client) ToggleCommentLike(ctx context.Context, commentID int64) (*likes.Result, error) {
	var result likes.Result
	if err := c.post(ctx, fmt.Sprintf("/api/comments/%d/like", commentID), nil, "", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req.Header, c.session.Token())

	resp, err := c.reads.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	return decodeResponse(resp, out)
}

func (c *Client) post(ctx context.Context, path string, query url.Values, contentType string, body []byte, out any) error {
	token := c.session.Token()
	if token == "" {
		return ErrSignedOut
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req.Header, token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	return decodeResponse(resp, out)
}

func (c *Client) setHeaders(h http.Header, token string) {
	h.Set("Accept", "application/json")
	h.Set("User-Agent", userAgent)
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func decodeResponse(resp *http.Response, out any) error {
	if resp == nil {
		return fmt.Errorf("ignite api: empty response")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	return q
}
