// Package thread is the client-side model of one post's comment section.
//
// A Section owns a flat list of comments for a single post. Every change goes
// through Reduce, a pure function from (State, Action) to State, so the full
// transition table lives in reducer.go. Parent/child grouping is derived on
// demand by GroupByParent and never stored.
//
// Writes are optimistic: AddComment inserts a pending comment at the head of
// its bucket before the request is sent, then either swaps it in place for the
// server's record or removes it. Likes flip locally first and are reverted if
// the request fails.
package thread
