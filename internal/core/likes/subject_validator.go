package likes

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// SubjectValidator validates that like subjects (posts/comments) exist
// This prevents creating likes on non-existent content
type SubjectValidator interface {
	SubjectExists(ctx context.Context, subject Subject) (bool, error)
}

// CachingSubjectValidator remembers subjects that were found to exist.
// Negative results are never cached so a freshly created comment can be liked
// right away.
type CachingSubjectValidator struct {
	next   SubjectValidator
	known  *expirable.LRU[Subject, struct{}]
	logger *slog.Logger
}

// NewCachingSubjectValidator wraps next with an LRU of known subjects
func NewCachingSubjectValidator(next SubjectValidator, size int, ttl time.Duration, logger *slog.Logger) *CachingSubjectValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingSubjectValidator{
		next:   next,
		known:  expirable.NewLRU[Subject, struct{}](size, nil, ttl),
		logger: logger,
	}
}

// SubjectExists checks the cache first and falls back to the wrapped validator
func (v *CachingSubjectValidator) SubjectExists(ctx context.Context, subject Subject) (bool, error) {
	if _, ok := v.known.Get(subject); ok {
		return true, nil
	}

	exists, err := v.next.SubjectExists(ctx, subject)
	if err != nil {
		return false, err
	}
	if exists {
		v.known.Add(subject, struct{}{})
		v.logger.Debug("like subject cached", "subject", subject.String())
	}
	return exists, nil
}
