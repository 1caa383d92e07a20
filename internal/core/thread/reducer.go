package thread

// ActionType names a store transition
type ActionType string

const (
	ActionLoadRoot          ActionType = "LOAD_ROOT"
	ActionLoadReplies       ActionType = "LOAD_REPLIES"
	ActionAddOptimistic     ActionType = "ADD_OPTIMISTIC"
	ActionReconcile         ActionType = "RECONCILE"
	ActionRollback          ActionType = "ROLLBACK"
	ActionTogglePostLike    ActionType = "TOGGLE_POST_LIKE"
	ActionSetPostLike       ActionType = "SET_POST_LIKE"
	ActionToggleCommentLike ActionType = "TOGGLE_COMMENT_LIKE"
	ActionSetCommentLike    ActionType = "SET_COMMENT_LIKE"
)

// Action is a store transition accepted by Reduce
type Action interface {
	Type() ActionType
}

// LoadRoot merges a fetched page of root comments.
// The first load replaces every confirmed entry; later pages append.
type LoadRoot struct {
	Comments   []Comment
	Page       int
	TotalPages int
}

// LoadReplies merges a fetched page of replies for one parent.
// Confirmed entries already held for the parent are dropped first.
type LoadReplies struct {
	Replies  []Comment
	ParentID int64
}

// AddOptimistic inserts a pending comment at the head of its bucket
type AddOptimistic struct {
	Comment Comment
}

// Reconcile swaps a pending comment for the server's record in place
type Reconcile struct {
	LocalID   string
	Confirmed Comment
}

// Rollback removes a pending comment whose request failed
type Rollback struct {
	LocalID string
}

// TogglePostLike flips the post's like state and adjusts its count by one
type TogglePostLike struct{}

// SetPostLike adopts the server's like state for the post
type SetPostLike struct {
	LikeCount int
	Liked     bool
}

// ToggleCommentLike flips a comment's like state and adjusts its count by one
type ToggleCommentLike struct {
	ID int64
}

// SetCommentLike adopts the server's like state for a comment
type SetCommentLike struct {
	ID        int64
	LikeCount int
	Liked     bool
}

func (LoadRoot) Type() ActionType          { return ActionLoadRoot }
func (LoadReplies) Type() ActionType       { return ActionLoadReplies }
func (AddOptimistic) Type() ActionType     { return ActionAddOptimistic }
func (Reconcile) Type() ActionType         { return ActionReconcile }
func (Rollback) Type() ActionType          { return ActionRollback }
func (TogglePostLike) Type() ActionType    { return ActionTogglePostLike }
func (SetPostLike) Type() ActionType       { return ActionSetPostLike }
func (ToggleCommentLike) Type() ActionType { return ActionToggleCommentLike }
func (SetCommentLike) Type() ActionType    { return ActionSetCommentLike }

// Reduce applies an action and returns the new state.
// The input state, including its Comments slice, is never modified.
// Unknown actions return the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoadRoot:
		return reduceLoadRoot(s, a)
	case LoadReplies:
		return reduceLoadReplies(s, a)
	case AddOptimistic:
		return reduceAddOptimistic(s, a)
	case Reconcile:
		return reduceReconcile(s, a)
	case Rollback:
		return reduceRollback(s, a)
	case TogglePostLike:
		s.Post.Liked, s.Post.LikeCount = flipLike(s.Post.Liked, s.Post.LikeCount)
		return s
	case SetPostLike:
		s.Post.Liked, s.Post.LikeCount = a.Liked, a.LikeCount
		return s
	case ToggleCommentLike:
		return updateComment(s, a.ID, func(c *Comment) {
			c.LikedByCurrentUser, c.LikeCount = flipLike(c.LikedByCurrentUser, c.LikeCount)
		})
	case SetCommentLike:
		return updateComment(s, a.ID, func(c *Comment) {
			c.LikedByCurrentUser, c.LikeCount = a.Liked, a.LikeCount
		})
	default:
		return s
	}
}

func reduceLoadRoot(s State, a LoadRoot) State {
	next := make([]Comment, 0, len(s.Comments)+len(a.Comments))
	for _, c := range s.Comments {
		// First load replaces server data; pending writes survive
		if !s.RootLoaded && !c.IsPending() {
			continue
		}
		next = append(next, c)
	}

	seen := make(map[Key]bool, len(next))
	for _, c := range next {
		seen[c.Key] = true
	}
	for _, c := range a.Comments {
		if seen[c.Key] {
			continue
		}
		seen[c.Key] = true
		c.ParentID = nil
		next = append(next, c)
	}

	s.Comments = next
	s.RootLoaded = true
	s.RootPage = a.Page
	s.RootTotalPages = a.TotalPages
	return s
}

func reduceLoadReplies(s State, a LoadReplies) State {
	incoming := make(map[Key]bool, len(a.Replies))
	for _, r := range a.Replies {
		incoming[r.Key] = true
	}

	// Only held copies of the fetched replies are replaced; confirmed replies
	// the page did not return stay where they are
	next := make([]Comment, 0, len(s.Comments)+len(a.Replies))
	for _, c := range s.Comments {
		if incoming[c.Key] {
			continue
		}
		next = append(next, c)
	}

	for _, r := range a.Replies {
		// Server payloads may omit the parent; the request determines it
		parent := a.ParentID
		r.ParentID = &parent
		next = append(next, r)
	}

	s.Comments = next
	return s
}

func reduceAddOptimistic(s State, a AddOptimistic) State {
	if !a.Comment.IsPending() || s.indexOf(a.Comment.Key) >= 0 {
		return s
	}

	// The flat list keeps relative order per bucket, so the front of the list
	// is the head of every bucket.
	next := make([]Comment, 0, len(s.Comments)+1)
	next = append(next, a.Comment)
	next = append(next, s.Comments...)

	s.Comments = next
	return s
}

func reduceReconcile(s State, a Reconcile) State {
	idx := s.indexOf(PendingKey(a.LocalID))
	if idx < 0 {
		return s
	}

	confirmed := a.Confirmed
	confirmed.ParentID = s.Comments[idx].ParentID

	next := make([]Comment, 0, len(s.Comments))
	for i, c := range s.Comments {
		switch {
		case i == idx:
			next = append(next, confirmed)
		case c.Key == confirmed.Key:
			// Already fetched by a concurrent load; keep the optimistic position
			continue
		default:
			next = append(next, c)
		}
	}

	s.Comments = next
	s.Post.CommentCount++
	if confirmed.ParentID != nil {
		s = updateComment(s, *confirmed.ParentID, func(c *Comment) {
			c.ReplyCount++
		})
	}
	return s
}

func reduceRollback(s State, a Rollback) State {
	idx := s.indexOf(PendingKey(a.LocalID))
	if idx < 0 {
		return s
	}

	next := make([]Comment, 0, len(s.Comments)-1)
	next = append(next, s.Comments[:idx]...)
	next = append(next, s.Comments[idx+1:]...)

	s.Comments = next
	return s
}

// updateComment copies the list and applies fn to the confirmed comment with id
func updateComment(s State, id int64, fn func(c *Comment)) State {
	idx := s.indexOf(ConfirmedKey(id))
	if idx < 0 {
		return s
	}

	next := make([]Comment, len(s.Comments))
	copy(next, s.Comments)
	fn(&next[idx])

	s.Comments = next
	return s
}

func flipLike(liked bool, count int) (bool, int) {
	if liked {
		if count > 0 {
			count--
		}
		return false, count
	}
	return true, count + 1
}
