// Package session implements the client session store: the single source of
// truth for "who is logged in and with what credential". One Store exists per
// client scope (a CLI process, or one browser session on the gateway); it is
// constructed explicitly and injected, never a package-level singleton.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tillflow/admin-api/internal/backend"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/ports"
)

// Options groups dependencies for a Store.
type Options struct {
	Repo    ports.SessionRepository
	Backend ports.AuthGateway
}

// Store holds the current session and drives the identity operations against
// the backend. Every mutation writes through to the repository synchronously,
// so the persisted record never diverges from memory.
//
// Operations are mutex-atomic; concurrent mutations are last-write-wins, with
// no queueing. Callers disable controls during in-flight requests.
type Store struct {
	mu      sync.Mutex
	repo    ports.SessionRepository
	backend ports.AuthGateway
	cur     domainauth.Session
}

// New constructs an anonymous Store without touching the repository.
func New(opts Options) (*Store, error) {
	if opts.Repo == nil {
		return nil, errors.New("session repository is required")
	}
	return &Store{repo: opts.Repo, backend: opts.Backend}, nil
}

// Open constructs a Store and rehydrates it from the repository. A missing or
// structurally invalid record yields an anonymous store; a corrupt record is
// also cleared from storage so it cannot resurface.
func Open(ctx context.Context, opts Options) (*Store, error) {
	s, err := New(opts)
	if err != nil {
		return nil, err
	}

	sess, ok, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return s, nil
	}
	if !sess.Valid() || !sess.Authenticated() {
		if clearErr := s.repo.Clear(ctx); clearErr != nil {
			return nil, fmt.Errorf("clear invalid session: %w", clearErr)
		}
		return s, nil
	}

	s.cur = sess
	return s, nil
}

// Login atomically installs an already-obtained credential pair and persists
// it. No network call and no validation happen here; the caller (the login
// form, having exchanged credentials with the backend) owns both.
func (s *Store) Login(ctx context.Context, token string, user domainauth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.install(ctx, domainauth.Session{User: &user, Token: token})
}

// RegisterAdmin submits an admin registration to the backend. When the
// response carries both a user and a token the store transitions to
// authenticated exactly like Login; when the backend omits either, the call
// succeeds and the store stays anonymous, and the caller redirects to the login
// flow. Backend rejections surface verbatim; nothing is retried.
func (s *Store) RegisterAdmin(ctx context.Context, in backend.RegisterAdminInput) error {
	if s.backend == nil {
		return errors.New("backend gateway is not configured")
	}

	res, err := s.backend.RegisterAdmin(ctx, in)
	if err != nil {
		return err
	}
	if !res.Complete() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.install(ctx, domainauth.Session{User: res.User, Token: res.Token})
}

// Logout clears the session and the persisted record. Idempotent: logging out
// an anonymous store is a no-op with the same end state.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.cur = domainauth.Session{}
	return nil
}

// ResetPassword asks the backend to start its out-of-band reset flow. It
// never mutates session state, whether the call succeeds or fails.
func (s *Store) ResetPassword(ctx context.Context, email string) error {
	if s.backend == nil {
		return errors.New("backend gateway is not configured")
	}
	return s.backend.ResetPassword(ctx, email)
}

// Session returns a snapshot of the current session record.
func (s *Store) Session() domainauth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// User returns the current identity, or nil when anonymous.
func (s *Store) User() *domainauth.User {
	return s.Session().User
}

// Token returns the current bearer credential, or "" when anonymous.
func (s *Store) Token() string {
	return s.Session().Token
}

// Authenticated reports whether both user and token are present.
func (s *Store) Authenticated() bool {
	return s.Session().Authenticated()
}

// install persists the record first, then updates memory, so a persistence
// failure leaves the previous state fully intact. Callers hold the mutex.
func (s *Store) install(ctx context.Context, sess domainauth.Session) error {
	if err := s.repo.Save(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.cur = sess
	return nil
}
