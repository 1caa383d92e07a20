package thread

import (
	"Ignite/internal/core/comments"
	"time"
)

// Comment is a comment as held by the client store
type Comment struct {
	CreatedAt          time.Time
	ParentID           *int64
	Key                Key
	Content            string
	Username           string
	UserRole           string
	LikeCount          int
	ReplyCount         int
	LikedByCurrentUser bool
}

// FromServer converts a server comment into a confirmed store entry
func FromServer(c *comments.Comment) Comment {
	var parent *int64
	if c.ParentID != nil {
		p := *c.ParentID
		parent = &p
	}
	return Comment{
		Key:                ConfirmedKey(c.ID),
		ParentID:           parent,
		Content:            c.Content,
		CreatedAt:          c.CreatedAt,
		Username:           c.Username,
		UserRole:           c.UserRole,
		LikeCount:          c.LikeCount,
		ReplyCount:         c.ReplyCount,
		LikedByCurrentUser: c.LikedByCurrentUser,
	}
}

// ID returns the server id of a confirmed comment
func (c Comment) ID() (int64, bool) {
	return c.Key.ServerID()
}

// IsRoot reports whether the comment is attached directly to the post
func (c Comment) IsRoot() bool {
	return c.ParentID == nil
}

// IsPending reports whether the comment awaits server confirmation
func (c Comment) IsPending() bool {
	return c.Key.IsPending()
}
