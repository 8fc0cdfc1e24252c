// Package memory provides in-memory adapters used by tests and the dev CLI.
package memory

import (
	"context"
	"sync"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
)

// SessionRepo is an in-memory SessionRepository. Safe for concurrent use.
type SessionRepo struct {
	mu   sync.Mutex
	sess domainauth.Session
	set  bool
}

// NewSessionRepo creates an empty in-memory session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{}
}

// Seed pre-populates the repository, for rehydration tests.
func (r *SessionRepo) Seed(sess domainauth.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = sess
	r.set = true
}

func (r *SessionRepo) Save(_ context.Context, sess domainauth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = sess
	r.set = true
	return nil
}

func (r *SessionRepo) Load(_ context.Context) (domainauth.Session, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.set {
		return domainauth.Session{}, false, nil
	}
	return r.sess, true, nil
}

func (r *SessionRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = domainauth.Session{}
	r.set = false
	return nil
}
