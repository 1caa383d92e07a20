package thread

import (
	"strconv"
)

// RootBucket is the bucket key of top-level comments
const RootBucket = "root"

// BucketKey returns the bucket a comment with the given parent falls into
func BucketKey(parentID *int64) string {
	if parentID == nil {
		return RootBucket
	}
	return strconv.FormatInt(*parentID, 10)
}

// GroupByParent groups a flat comment list by parent.
// Keys are RootBucket or the decimal parent id; each bucket keeps the relative
// order of the input. The result shares nothing with later store states, so
// call it again after every mutation instead of holding on to it.
func GroupByParent(list []Comment) map[string][]Comment {
	buckets := make(map[string][]Comment)
	for _, c := range list {
		key := BucketKey(c.ParentID)
		buckets[key] = append(buckets[key], c)
	}
	return buckets
}

// RootsOf returns the top-level comments of list in order
func RootsOf(list []Comment) []Comment {
	return GroupByParent(list)[RootBucket]
}

// RepliesOf returns the held replies to parentID in order
func RepliesOf(list []Comment, parentID int64) []Comment {
	return GroupByParent(list)[BucketKey(&parentID)]
}
