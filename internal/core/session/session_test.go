package session

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	s := New()
	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())

	s.Acquire(Credentials{Token: "tok", Username: "alice", Role: "RECRUITER"})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "tok", s.Token())

	creds, ok := s.Credentials()
	require.True(t, ok)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "RECRUITER", creds.Role)

	s.Clear()
	assert.False(t, s.Authenticated())
}

func TestSession_EmptyTokenIsSignedOut(t *testing.T) {
	s := New()
	s.Acquire(Credentials{Username: "alice"})
	assert.False(t, s.Authenticated())
}

func TestSession_Require(t *testing.T) {
	s := New()

	_, err := s.Require(ActionLikePost, "/feed")
	require.Error(t, err)

	redirect, ok := AsRedirect(err)
	require.True(t, ok)
	assert.Equal(t, SignInPath, redirect.Path)
	assert.Equal(t, "Please sign in to like posts", redirect.Message)
	assert.Equal(t, "/feed", redirect.ReturnTo)

	s.Acquire(Credentials{Token: "tok", Username: "alice"})
	creds, err := s.Require(ActionLikePost, "/feed")
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.Username)
}

func TestRedirectError_URL(t *testing.T) {
	redirect := NewRedirectError(ActionComment, "/feed?post=7")

	u, err := url.Parse(redirect.URL())
	require.NoError(t, err)

	assert.Equal(t, "/signin", u.Path)
	assert.Equal(t, "Please sign in to comment", u.Query().Get("message"))
	assert.Equal(t, "/feed?post=7", u.Query().Get("redirect"))
}

func TestIsRedirect_Wrapped(t *testing.T) {
	err := fmt.Errorf("add comment: %w", NewRedirectError(ActionReplyComment, ""))
	assert.True(t, IsRedirect(err))
	assert.False(t, IsRedirect(fmt.Errorf("boom")))
}
