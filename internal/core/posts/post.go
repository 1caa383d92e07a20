package posts

import (
	"time"
)

// Post represents a feed post that can be liked and commented on
type Post struct {
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	Title              string    `json:"title" db:"title"`
	Content            string    `json:"content" db:"content"`
	Username           string    `json:"username" db:"author_username"`
	UserRole           string    `json:"userRole" db:"author_role"`
	ID                 int64     `json:"id" db:"id"`
	CommentCount       int       `json:"commentCount" db:"comment_count"`
	LikeCount          int       `json:"likeCount" db:"like_count"`
	LikedByCurrentUser bool      `json:"likedByCurrentUser" db:"-"`
}

// CreatePostRequest represents input for creating a new feed post
type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"-"`
	UserRole string `json:"-"`
}
