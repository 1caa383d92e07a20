package comments

import (
	"time"
)

// Comment represents a comment on a feed post
// Root comments have a nil ParentID; replies point at the comment they answer
// Author fields are denormalized at write time from the bearer token
type Comment struct {
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	ParentID           *int64    `json:"parent_id" db:"parent_id"`
	Content            string    `json:"content" db:"content"`
	Username           string    `json:"username" db:"author_username"`
	UserRole           string    `json:"userRole" db:"author_role"`
	ID                 int64     `json:"id" db:"id"`
	PostID             int64     `json:"postId" db:"post_id"`
	LikeCount          int       `json:"likeCount" db:"like_count"`
	ReplyCount         int       `json:"replyCount" db:"reply_count"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser" db:"-"`
}

// IsRoot reports whether the comment is attached directly to the post
func (c *Comment) IsRoot() bool {
	return c.ParentID == nil
}

// Author identifies the user writing a comment
type Author struct {
	Username string
	Role     string
}

// Page is one page of comments plus the pagination envelope
// Matches the {content, page, totalPages} shape the web client consumes
type Page struct {
	Content    []*Comment `json:"content"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}
