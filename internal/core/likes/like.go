package likes

import (
	"fmt"
	"time"
)

// SubjectType names the kind of record a like points at
type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

// Subject identifies a likeable post or comment
type Subject struct {
	Type SubjectType
	ID   int64
}

// PostSubject returns the subject for a post
func PostSubject(id int64) Subject {
	return Subject{Type: SubjectPost, ID: id}
}

// CommentSubject returns the subject for a comment
func CommentSubject(id int64) Subject {
	return Subject{Type: SubjectComment, ID: id}
}

func (s Subject) String() string {
	return fmt.Sprintf("%s:%d", s.Type, s.ID)
}

// Like represents one user's like on a post or comment
type Like struct {
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	SubjectType SubjectType `json:"subjectType" db:"subject_type"`
	Username    string      `json:"username" db:"username"`
	ID          int64       `json:"id" db:"id"`
	SubjectID   int64       `json:"subjectId" db:"subject_id"`
}

// Result is the like state of a subject after a toggle
type Result struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"likeCount"`
}
