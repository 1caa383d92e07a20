package thread

import (
	"Ignite/internal/core/comments"
	"Ignite/internal/core/likes"
	"Ignite/internal/core/session"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultRequestTimeout bounds every backend call made by a Section
	DefaultRequestTimeout = 15 * time.Second

	// DefaultReplyPageSize is the number of replies fetched when a comment is expanded
	DefaultReplyPageSize = 10
)

// Backend is the remote API a Section reads from and writes to
type Backend interface {
	ListRootComments(ctx context.Context, postID int64, page, size int) (*comments.Page, error)
	ListReplies(ctx context.Context, commentID int64, page, size int) (*comments.Page, error)
	CreateComment(ctx context.Context, postID int64, content string, parentID *int64) (*comments.Comment, error)
	TogglePostLike(ctx context.Context, postID int64) (*likes.Result, error)
	ToggleCommentLike(ctx context.Context, commentID int64) (*likes.Result, error)
}

// Option configures a Section
type Option func(*Section)

// WithRequestTimeout sets the per-request timeout; zero or less disables it
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Section) { s.timeout = d }
}

// WithLogger sets the logger used for failed requests
func WithLogger(logger *slog.Logger) Option {
	return func(s *Section) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithReplyPageSize sets how many replies one expansion fetches
func WithReplyPageSize(n int) Option {
	return func(s *Section) {
		if n > 0 {
			s.replyPageSize = n
		}
	}
}

// WithReturnTo sets where a sign-in redirect should send the user back to
func WithReturnTo(path string) Option {
	return func(s *Section) { s.returnTo = path }
}

// WithLocalIDs replaces the generator of pending comment ids
func WithLocalIDs(next func() string) Option {
	return func(s *Section) {
		if next != nil {
			s.newLocalID = next
		}
	}
}

// WithClock replaces the time source used to stamp pending comments
func WithClock(now func() time.Time) Option {
	return func(s *Section) {
		if now != nil {
			s.now = now
		}
	}
}

// Section is the comment section of one post.
// It is the only writer of its State; concurrent callers are serialized, and
// network calls run without holding the lock.
type Section struct {
	backend    Backend
	session    *session.Session
	logger     *slog.Logger
	expander   *Expander
	newLocalID func() string
	now        func() time.Time

	replyLoading   map[int64]bool
	repliesFetched map[int64]bool
	commentLiking  map[int64]bool
	returnTo       string

	state         State
	postID        int64
	timeout       time.Duration
	replyPageSize int
	mu            sync.Mutex
	rootLoading   bool
	postLiking    bool
}

// NewSection creates the comment section for post
func NewSection(post PostState, backend Backend, sess *session.Session, opts ...Option) *Section {
	s := &Section{
		backend:        backend,
		session:        sess,
		logger:         slog.Default(),
		expander:       NewExpander(),
		newLocalID:     func() string { return uuid.NewString() },
		now:            time.Now,
		replyLoading:   make(map[int64]bool),
		repliesFetched: make(map[int64]bool),
		commentLiking:  make(map[int64]bool),
		state:          State{Post: post},
		postID:         post.ID,
		timeout:        DefaultRequestTimeout,
		replyPageSize:  DefaultReplyPageSize,
	}
	if s.session == nil {
		s.session = session.New()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the section state
func (s *Section) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state
	snapshot.Comments = append([]Comment(nil), s.state.Comments...)
	return snapshot
}

// Post returns the owning post's counters
func (s *Section) Post() PostState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Post
}

// Comments returns a copy of the flat comment list
func (s *Section) Comments() []Comment {
	return s.State().Comments
}

// Buckets groups the current comments by parent
func (s *Section) Buckets() map[string][]Comment {
	return GroupByParent(s.Comments())
}

// Roots returns the top-level comments, newest optimistic entries first
func (s *Section) Roots() []Comment {
	return RootsOf(s.Comments())
}

// Replies returns the held replies of a comment
func (s *Section) Replies(parentID int64) []Comment {
	return RepliesOf(s.Comments(), parentID)
}

// Expansion returns the reply visibility state of a comment
func (s *Section) Expansion(id int64) Expansion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expander.State(id)
}

// RootLoading reports whether a root page request is in flight
func (s *Section) RootLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rootLoading
}

// LoadRootComments fetches one page of top-level comments.
// A call made while another is in flight returns nil without fetching.
// On failure the state is left as it was.
func (s *Section) LoadRootComments(ctx context.Context, page, size int) error {
	s.mu.Lock()
	if s.rootLoading {
		s.mu.Unlock()
		return nil
	}
	s.rootLoading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.rootLoading = false
		s.mu.Unlock()
	}()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	result, err := s.backend.ListRootComments(ctx, s.postID, page, size)
	if err != nil {
		s.logger.Error("failed to load comments",
			"error", err,
			"post", s.postID,
			"page", page)
		return fmt.Errorf("load comments for post %d: %w", s.postID, err)
	}

	s.dispatch(LoadRoot{
		Comments:   fromServerList(result.Content),
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
	return nil
}

// LoadMoreRootComments fetches the page after the last one loaded.
// Returns nil without fetching when every page is already held.
func (s *Section) LoadMoreRootComments(ctx context.Context, size int) error {
	st := s.State()
	if !st.HasMoreRoots() {
		return nil
	}
	page := 0
	if st.RootLoaded {
		page = st.RootPage + 1
	}
	return s.LoadRootComments(ctx, page, size)
}

// LoadReplies fetches the first page of replies to parentID.
// Skipped when replies for the parent were already fetched or are being fetched.
func (s *Section) LoadReplies(ctx context.Context, parentID int64) error {
	s.mu.Lock()
	if s.replyLoading[parentID] || s.repliesFetched[parentID] {
		s.mu.Unlock()
		return nil
	}
	s.replyLoading[parentID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.replyLoading, parentID)
		s.mu.Unlock()
	}()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	result, err := s.backend.ListReplies(ctx, parentID, 0, s.replyPageSize)
	if err != nil {
		s.logger.Error("failed to load replies",
			"error", err,
			"post", s.postID,
			"comment", parentID)
		return fmt.Errorf("load replies for comment %d: %w", parentID, err)
	}

	s.mu.Lock()
	s.repliesFetched[parentID] = true
	s.dispatchLocked(LoadReplies{
		ParentID: parentID,
		Replies:  fromServerList(result.Content),
	})
	s.mu.Unlock()
	return nil
}

// ExpandReplies shows the replies of a comment, fetching them if none are held
func (s *Section) ExpandReplies(ctx context.Context, id int64) error {
	s.mu.Lock()
	replyCount := 0
	if idx := s.state.indexOf(ConfirmedKey(id)); idx >= 0 {
		replyCount = s.state.Comments[idx].ReplyCount
	}
	held := s.state.localReplyCounts()[id]
	fetch := s.expander.Expand(id, replyCount, held)
	s.mu.Unlock()

	if !fetch {
		return nil
	}

	err := s.LoadReplies(ctx, id)

	s.mu.Lock()
	s.expander.Loaded(id, s.state.localReplyCounts()[id], err)
	s.mu.Unlock()
	return err
}

// HideReplies collapses a comment's replies without dropping them
func (s *Section) HideReplies(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expander.Hide(id)
}

// AddComment posts a root comment, or a reply when parentID is set.
// The comment is visible at the head of its bucket immediately; on success it
// is replaced in place by the server's record, on failure it is removed.
// Returns ErrEmptyContent or a *session.RedirectError before touching the store.
func (s *Section) AddComment(ctx context.Context, content string, parentID *int64) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, ErrEmptyContent
	}

	action := session.ActionComment
	if parentID != nil {
		action = session.ActionReplyComment
	}
	creds, err := s.session.Require(action, s.returnTo)
	if err != nil {
		return Comment{}, err
	}

	var parent *int64
	if parentID != nil {
		p := *parentID
		parent = &p
	}

	localID := s.newLocalID()
	s.dispatch(AddOptimistic{Comment: Comment{
		Key:       PendingKey(localID),
		ParentID:  parent,
		Content:   content,
		CreatedAt: s.now(),
		Username:  creds.Username,
		UserRole:  creds.Role,
	}})

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	created, err := s.backend.CreateComment(ctx, s.postID, content, parent)
	if err != nil {
		s.dispatch(Rollback{LocalID: localID})
		s.logger.Error("failed to create comment",
			"error", err,
			"post", s.postID,
			"parent", parent)
		return Comment{}, fmt.Errorf("create comment on post %d: %w", s.postID, err)
	}

	confirmed := FromServer(created)
	confirmed.ParentID = parent
	s.dispatch(Reconcile{LocalID: localID, Confirmed: confirmed})
	return confirmed, nil
}

// ToggleLike likes or unlikes the post.
// The local state flips before the request and is restored if it fails.
// A click while a previous toggle is in flight is ignored.
func (s *Section) ToggleLike(ctx context.Context) error {
	if _, err := s.session.Require(session.ActionLikePost, s.returnTo); err != nil {
		return err
	}

	s.mu.Lock()
	if s.postLiking {
		s.mu.Unlock()
		return nil
	}
	s.postLiking = true
	before := s.state.Post
	s.dispatchLocked(TogglePostLike{})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.postLiking = false
		s.mu.Unlock()
	}()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	result, err := s.backend.TogglePostLike(ctx, s.postID)
	if err != nil {
		s.dispatch(SetPostLike{Liked: before.Liked, LikeCount: before.LikeCount})
		s.logger.Error("failed to toggle post like", "error", err, "post", s.postID)
		return fmt.Errorf("toggle like on post %d: %w", s.postID, err)
	}

	s.dispatch(SetPostLike{Liked: result.Liked, LikeCount: result.LikeCount})
	return nil
}

// LikeComment likes or unlikes a held comment, optimistically like ToggleLike
func (s *Section) LikeComment(ctx context.Context, commentID int64) error {
	if _, err := s.session.Require(session.ActionLikeComment, s.returnTo); err != nil {
		return err
	}

	s.mu.Lock()
	if s.commentLiking[commentID] {
		s.mu.Unlock()
		return nil
	}
	var before Comment
	if idx := s.state.indexOf(ConfirmedKey(commentID)); idx >= 0 {
		before = s.state.Comments[idx]
	}
	s.commentLiking[commentID] = true
	s.dispatchLocked(ToggleCommentLike{ID: commentID})
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.commentLiking, commentID)
		s.mu.Unlock()
	}()

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	result, err := s.backend.ToggleCommentLike(ctx, commentID)
	if err != nil {
		s.dispatch(SetCommentLike{
			ID:        commentID,
			Liked:     before.LikedByCurrentUser,
			LikeCount: before.LikeCount,
		})
		s.logger.Error("failed to toggle comment like", "error", err, "comment", commentID)
		return fmt.Errorf("toggle like on comment %d: %w", commentID, err)
	}

	s.dispatch(SetCommentLike{ID: commentID, Liked: result.Liked, LikeCount: result.LikeCount})
	return nil
}

func (s *Section) dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(a)
}

// dispatchLocked reduces the state and applies the auto-expand rule.
// Caller must hold s.mu.
func (s *Section) dispatchLocked(a Action) {
	before := s.state.localReplyCounts()
	s.state = Reduce(s.state, a)
	after := s.state.localReplyCounts()
	for id, n := range after {
		s.expander.Observe(id, before[id], n)
	}
	for id, n := range before {
		if _, ok := after[id]; !ok {
			s.expander.Observe(id, n, 0)
		}
	}
}

func (s *Section) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func fromServerList(list []*comments.Comment) []Comment {
	result := make([]Comment, 0, len(list))
	for _, c := range list {
		if c == nil {
			continue
		}
		result = append(result, FromServer(c))
	}
	return result
}
