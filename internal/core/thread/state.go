package thread

// PostState is the client view of the post that owns the comment section
type PostState struct {
	ID           int64
	CommentCount int
	LikeCount    int
	Liked        bool
}

// State is everything the comment section holds for one post
type State struct {
	Comments       []Comment
	Post           PostState
	RootPage       int
	RootTotalPages int
	RootLoaded     bool
}

// HasMoreRoots reports whether another page of root comments can be fetched
func (s State) HasMoreRoots() bool {
	return !s.RootLoaded || s.RootPage+1 < s.RootTotalPages
}

// indexOf returns the position of key in the flat list, or -1
func (s State) indexOf(key Key) int {
	for i := range s.Comments {
		if s.Comments[i].Key == key {
			return i
		}
	}
	return -1
}

// localReplyCounts counts held replies per parent id
func (s State) localReplyCounts() map[int64]int {
	counts := make(map[int64]int)
	for _, c := range s.Comments {
		if c.ParentID != nil {
			counts[*c.ParentID]++
		}
	}
	return counts
}
