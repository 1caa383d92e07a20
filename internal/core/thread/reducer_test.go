package thread

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func confirmed(id int64, parent *int64, content string) Comment {
	return Comment{Key: ConfirmedKey(id), ParentID: parent, Content: content}
}

func pending(localID string, parent *int64, content string) Comment {
	return Comment{Key: PendingKey(localID), ParentID: parent, Content: content}
}

func keysOf(list []Comment) []string {
	keys := make([]string, 0, len(list))
	for _, c := range list {
		keys = append(keys, c.Key.String())
	}
	return keys
}

func TestKey_PendingAndConfirmedNeverCollide(t *testing.T) {
	p := PendingKey("42")
	c := ConfirmedKey(42)

	assert.NotEqual(t, p, c)
	assert.True(t, p.IsPending())
	assert.False(t, c.IsPending())

	local, ok := p.LocalID()
	assert.True(t, ok)
	assert.Equal(t, "42", local)
	_, ok = p.ServerID()
	assert.False(t, ok)

	id, ok := c.ServerID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "42", c.String())
	assert.Equal(t, "pending:42", p.String())
}

func TestReduce_LoadRoot_FirstLoadReplaces(t *testing.T) {
	s := State{Comments: []Comment{
		confirmed(1, nil, "stale"),
		pending("a", nil, "draft"),
	}}

	s = Reduce(s, LoadRoot{
		Comments:   []Comment{confirmed(3, nil, "three"), confirmed(2, nil, "two")},
		Page:       0,
		TotalPages: 2,
	})

	assert.Equal(t, []string{"pending:a", "3", "2"}, keysOf(s.Comments))
	assert.True(t, s.RootLoaded)
	assert.True(t, s.HasMoreRoots())
}

func TestReduce_LoadRoot_LaterPagesAppendWithoutDuplicates(t *testing.T) {
	s := Reduce(State{}, LoadRoot{Comments: []Comment{confirmed(3, nil, ""), confirmed(2, nil, "")}, TotalPages: 2})
	s = Reduce(s, LoadRoot{Comments: []Comment{confirmed(2, nil, ""), confirmed(1, nil, "")}, Page: 1, TotalPages: 2})

	assert.Equal(t, []string{"3", "2", "1"}, keysOf(s.Comments))
	assert.Equal(t, 1, s.RootPage)
	assert.False(t, s.HasMoreRoots())
}

func TestReduce_LoadReplies_StampsParentAndReplacesStale(t *testing.T) {
	s := State{Comments: []Comment{
		confirmed(5, nil, "root"),
		confirmed(10, int64Ptr(5), "old copy"),
		pending("p", int64Ptr(5), "draft reply"),
	}}

	// Server payload omits parent_id
	s = Reduce(s, LoadReplies{ParentID: 5, Replies: []Comment{
		confirmed(10, nil, "fresh"),
		confirmed(11, nil, "another"),
	}})

	require.Len(t, s.Comments, 4)
	assert.Equal(t, []string{"5", "pending:p", "10", "11"}, keysOf(s.Comments))
	for _, c := range s.Comments[1:] {
		require.NotNil(t, c.ParentID)
		assert.Equal(t, int64(5), *c.ParentID)
	}
	assert.Equal(t, "fresh", s.Comments[2].Content)
}

func TestReduce_LoadReplies_Twice_NoDuplicates(t *testing.T) {
	page := LoadReplies{ParentID: 5, Replies: []Comment{confirmed(10, nil, ""), confirmed(11, nil, "")}}

	s := Reduce(State{Comments: []Comment{confirmed(5, nil, "")}}, page)
	s = Reduce(s, page)

	assert.Len(t, RepliesOf(s.Comments, 5), 2)
}

func TestReduce_LoadReplies_KeepsConfirmedRepliesMissingFromPage(t *testing.T) {
	s := State{Comments: []Comment{
		confirmed(99, int64Ptr(5), "mine"),
		confirmed(5, nil, "root"),
	}}

	s = Reduce(s, LoadReplies{ParentID: 5, Replies: []Comment{
		confirmed(100, nil, "older"),
		confirmed(101, nil, "older still"),
	}})

	assert.Equal(t, []string{"99", "5", "100", "101"}, keysOf(s.Comments))
	assert.Len(t, RepliesOf(s.Comments, 5), 3)
}

func TestReduce_AddOptimistic_HeadOfBucket(t *testing.T) {
	s := State{Comments: []Comment{
		confirmed(2, nil, "older root"),
		confirmed(10, int64Ptr(2), "older reply"),
	}}

	s = Reduce(s, AddOptimistic{Comment: pending("r", int64Ptr(2), "new reply")})
	s = Reduce(s, AddOptimistic{Comment: pending("c", nil, "new root")})

	roots := RootsOf(s.Comments)
	replies := RepliesOf(s.Comments, 2)
	assert.Equal(t, "new root", roots[0].Content)
	assert.Equal(t, "new reply", replies[0].Content)
	assert.Equal(t, "older reply", replies[1].Content)
}

func TestReduce_AddOptimistic_RejectsConfirmedAndDuplicates(t *testing.T) {
	s := Reduce(State{}, AddOptimistic{Comment: confirmed(1, nil, "not pending")})
	assert.Empty(t, s.Comments)

	s = Reduce(s, AddOptimistic{Comment: pending("a", nil, "x")})
	s = Reduce(s, AddOptimistic{Comment: pending("a", nil, "x")})
	assert.Len(t, s.Comments, 1)
}

func TestReduce_Reconcile_PreservesPositionAndParent(t *testing.T) {
	s := State{
		Post: PostState{ID: 7, CommentCount: 2},
		Comments: []Comment{
			confirmed(1, nil, "a"),
			confirmed(2, nil, "b"),
		},
	}
	s = Reduce(s, AddOptimistic{Comment: pending("tmp", nil, "hello")})

	server := confirmed(42, int64Ptr(999), "hello")
	server.Username = "alice"
	s = Reduce(s, Reconcile{LocalID: "tmp", Confirmed: server})

	require.Len(t, s.Comments, 3)
	head := RootsOf(s.Comments)[0]
	id, ok := head.ID()
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "alice", head.Username)
	assert.Nil(t, head.ParentID, "parent comes from the optimistic entry")
	assert.Equal(t, 3, s.Post.CommentCount)
}

func TestReduce_Reconcile_BumpsParentReplyCount(t *testing.T) {
	root := confirmed(5, nil, "root")
	root.ReplyCount = 1
	s := State{Comments: []Comment{root}}

	s = Reduce(s, AddOptimistic{Comment: pending("tmp", int64Ptr(5), "reply")})
	assert.Equal(t, 1, s.Comments[1].ReplyCount, "pending replies don't count")

	s = Reduce(s, Reconcile{LocalID: "tmp", Confirmed: confirmed(6, nil, "reply")})
	assert.Equal(t, 2, s.Comments[1].ReplyCount)
}

func TestReduce_Reconcile_DropsConcurrentlyFetchedCopy(t *testing.T) {
	s := State{Comments: []Comment{confirmed(5, nil, "root")}}
	s = Reduce(s, AddOptimistic{Comment: pending("tmp", int64Ptr(5), "reply")})
	s = Reduce(s, LoadReplies{ParentID: 5, Replies: []Comment{confirmed(6, nil, "reply")}})

	s = Reduce(s, Reconcile{LocalID: "tmp", Confirmed: confirmed(6, nil, "reply")})

	assert.Equal(t, []string{"6", "5"}, keysOf(s.Comments))
}

func TestReduce_Reconcile_UnknownLocalIDIsNoop(t *testing.T) {
	s := State{Comments: []Comment{confirmed(1, nil, "")}, Post: PostState{CommentCount: 1}}
	next := Reduce(s, Reconcile{LocalID: "gone", Confirmed: confirmed(2, nil, "")})

	assert.Equal(t, s, next)
}

func TestReduce_Rollback(t *testing.T) {
	s := State{Comments: []Comment{confirmed(1, nil, "")}}
	s = Reduce(s, AddOptimistic{Comment: pending("tmp", nil, "doomed")})
	require.Len(t, s.Comments, 2)

	s = Reduce(s, Rollback{LocalID: "tmp"})

	assert.Equal(t, []string{"1"}, keysOf(s.Comments))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	original := []Comment{confirmed(1, nil, "a"), confirmed(2, nil, "b")}
	s := State{Comments: original}

	_ = Reduce(s, ToggleCommentLike{ID: 1})
	_ = Reduce(s, Rollback{LocalID: "x"})
	_ = Reduce(s, LoadReplies{ParentID: 1, Replies: []Comment{confirmed(3, nil, "")}})

	assert.False(t, original[0].LikedByCurrentUser)
	assert.Equal(t, 0, original[0].LikeCount)
	assert.Equal(t, []string{"1", "2"}, keysOf(original))
}

func TestReduce_Likes(t *testing.T) {
	c := confirmed(1, nil, "")
	c.LikeCount = 4
	s := State{Post: PostState{ID: 7, LikeCount: 10}, Comments: []Comment{c}}

	s = Reduce(s, TogglePostLike{})
	assert.True(t, s.Post.Liked)
	assert.Equal(t, 11, s.Post.LikeCount)

	s = Reduce(s, TogglePostLike{})
	assert.False(t, s.Post.Liked)
	assert.Equal(t, 10, s.Post.LikeCount)

	s = Reduce(s, SetPostLike{Liked: true, LikeCount: 20})
	assert.Equal(t, PostState{ID: 7, LikeCount: 20, Liked: true}, s.Post)

	s = Reduce(s, ToggleCommentLike{ID: 1})
	assert.True(t, s.Comments[0].LikedByCurrentUser)
	assert.Equal(t, 5, s.Comments[0].LikeCount)

	s = Reduce(s, SetCommentLike{ID: 1, Liked: false, LikeCount: 3})
	assert.False(t, s.Comments[0].LikedByCurrentUser)
	assert.Equal(t, 3, s.Comments[0].LikeCount)
}

func TestReduce_UnlikeNeverGoesNegative(t *testing.T) {
	s := Reduce(State{Post: PostState{Liked: true}}, TogglePostLike{})
	assert.Equal(t, 0, s.Post.LikeCount)
}
