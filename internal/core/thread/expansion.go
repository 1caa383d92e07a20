package thread

// Expansion is the visibility state of one comment's replies
type Expansion int

const (
	// Collapsed hides replies; loaded replies are kept
	Collapsed Expansion = iota
	// Expanding means the replies request is in flight
	Expanding
	// Expanded shows the held replies
	Expanded
)

func (e Expansion) String() string {
	switch e {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// Expander tracks the expansion state machine per comment id.
// Transitions:
//
//	collapsed --expand (replyCount>0, none held)--> expanding --loaded--> expanded
//	collapsed --expand (replies held)------------> expanded
//	expanding --failed---------------------------> collapsed
//	expanded  --hide-----------------------------> collapsed
//	any       --held replies go from 0 to >0-----> expanded
//	expanded  --held replies go from >0 to 0-----> collapsed
//
// Not safe for concurrent use; Section guards it with its own mutex.
type Expander struct {
	states map[int64]Expansion
}

// NewExpander returns a tracker with every comment collapsed
func NewExpander() *Expander {
	return &Expander{states: make(map[int64]Expansion)}
}

// State returns the current state of a comment
func (e *Expander) State(id int64) Expansion {
	return e.states[id]
}

// Expand requests that replies of id become visible.
// It reports whether the caller must fetch replies first.
func (e *Expander) Expand(id int64, replyCount, held int) bool {
	switch e.states[id] {
	case Expanded, Expanding:
		return false
	}

	if held > 0 {
		e.states[id] = Expanded
		return false
	}
	if replyCount > 0 {
		e.states[id] = Expanding
		return true
	}
	return false
}

// Loaded settles an in-flight expansion
func (e *Expander) Loaded(id int64, held int, err error) {
	if e.states[id] != Expanding {
		return
	}
	if err != nil || held == 0 {
		e.states[id] = Collapsed
		return
	}
	e.states[id] = Expanded
}

// Hide collapses a comment; held replies are kept so a later Expand skips the fetch
func (e *Expander) Hide(id int64) {
	if e.states[id] == Expanded {
		e.states[id] = Collapsed
	}
}

// Observe applies the auto-expand rule after the held reply count of id changed.
// An expanded comment whose last held reply went away collapses again so a
// later Expand fetches from the server.
func (e *Expander) Observe(id int64, before, after int) {
	switch {
	case before == 0 && after > 0:
		e.states[id] = Expanded
	case before > 0 && after == 0 && e.states[id] == Expanded:
		e.states[id] = Collapsed
	}
}
