package thread

import (
	"strconv"
)

// KeyKind distinguishes locally fabricated comments from server records
type KeyKind uint8

const (
	// KindPending marks a comment inserted optimistically and not yet confirmed
	KindPending KeyKind = iota + 1
	// KindConfirmed marks a comment the server has stored
	KindConfirmed
)

// Key identifies a comment in the store.
// A pending key carries a local id, a confirmed key carries the server id.
// The two spaces never compare equal, so reconciliation can't match the wrong
// record.
type Key struct {
	localID  string
	serverID int64
	kind     KeyKind
}

// PendingKey returns the key of an optimistic comment
func PendingKey(localID string) Key {
	return Key{kind: KindPending, localID: localID}
}

// ConfirmedKey returns the key of a server-stored comment
func ConfirmedKey(id int64) Key {
	return Key{kind: KindConfirmed, serverID: id}
}

// Kind returns whether the key is pending or confirmed
func (k Key) Kind() KeyKind {
	return k.kind
}

// IsPending reports whether the key belongs to an unconfirmed comment
func (k Key) IsPending() bool {
	return k.kind == KindPending
}

// LocalID returns the local id of a pending key
func (k Key) LocalID() (string, bool) {
	return k.localID, k.kind == KindPending
}

// ServerID returns the server id of a confirmed key
func (k Key) ServerID() (int64, bool) {
	return k.serverID, k.kind == KindConfirmed
}

func (k Key) String() string {
	switch k.kind {
	case KindPending:
		return "pending:" + k.localID
	case KindConfirmed:
		return strconv.FormatInt(k.serverID, 10)
	default:
		return "invalid"
	}
}
