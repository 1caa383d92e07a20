package comments

// ListRootsRequest contains parameters for listing a post's root comments
type ListRootsRequest struct {
	Viewer string
	PostID int64
	Page   int
	Size   int
}

// ListRepliesRequest contains parameters for listing replies to a comment
type ListRepliesRequest struct {
	Viewer    string
	CommentID int64
	Page      int
	Size      int
}

// CreateCommentRequest contains parameters for creating a comment or reply
type CreateCommentRequest struct {
	ParentID *int64
	Content  string
	PostID   int64
}
