// Package session holds the credentials of the signed-in user for client code.
// A Session is created once and injected into whatever performs network calls;
// it is filled on login and emptied on logout.
package session

import (
	"sync"
)

// Credentials identify the signed-in user
type Credentials struct {
	Token    string
	Username string
	Role     string
}

// Session is the client-side session context
// Safe for concurrent use
type Session struct {
	creds *Credentials
	mu    sync.RWMutex
}

// New returns an empty (signed-out) session
func New() *Session {
	return &Session{}
}

// Acquire stores credentials after a successful login
func (s *Session) Acquire(creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := creds
	s.creds = &c
}

// Clear drops credentials on logout
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
}

// Credentials returns the current credentials and whether the user is signed in
func (s *Session) Credentials() (Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil || s.creds.Token == "" {
		return Credentials{}, false
	}
	return *s.creds, true
}

// Token returns the bearer token, or "" when signed out
func (s *Session) Token() string {
	creds, _ := s.Credentials()
	return creds.Token
}

// Authenticated reports whether a bearer token is held
func (s *Session) Authenticated() bool {
	_, ok := s.Credentials()
	return ok
}

// Require returns the credentials, or a *RedirectError naming the action the
// user tried to perform when signed out. returnTo is the location to come
// back to after signing in.
func (s *Session) Require(action Action, returnTo string) (Credentials, error) {
	creds, ok := s.Credentials()
	if !ok {
		return Credentials{}, NewRedirectError(action, returnTo)
	}
	return creds, nil
}
