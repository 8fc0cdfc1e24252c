package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tillflow/admin-api/internal/ports"
	"github.com/tillflow/admin-api/internal/session"
)

// SessionCookieName carries the opaque browser scope identifier. The bearer
// token itself never leaves the server.
const SessionCookieName = "tillflow_sid"

// sessionCookieMaxAge bounds how long a browser keeps its scope identifier.
const sessionCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

// RepoFactory builds a SessionRepository bound to one client scope.
type RepoFactory func(scope string) (ports.SessionRepository, error)

// SessionsOptions groups dependencies for Sessions.
type SessionsOptions struct {
	Repos        RepoFactory       // Required: per-scope repository factory
	Backend      ports.AuthGateway // Required: backend auth surface
	CookieDomain string            // Optional: cookie domain override
}

// Sessions hands out one session store per browser scope. The scope is an
// opaque identifier carried in the sid cookie; the store behind it holds the
// identity and bearer token server-side.
type Sessions struct {
	repos        RepoFactory
	backend      ports.AuthGateway
	cookieDomain string

	mu     sync.Mutex
	stores map[string]*session.Store
}

// NewSessions constructs the per-scope session registry.
func NewSessions(opts SessionsOptions) (*Sessions, error) {
	if opts.Repos == nil {
		return nil, errors.New("session repository factory is required")
	}
	if opts.Backend == nil {
		return nil, errors.New("auth gateway is required")
	}
	return &Sessions{
		repos:        opts.Repos,
		backend:      opts.Backend,
		cookieDomain: opts.CookieDomain,
		stores:       make(map[string]*session.Store),
	}, nil
}

// requestScope extracts the sid cookie value. Only scopes in the uuid form
// this registry mints are honored; anything else is treated as absent, so a
// client cannot name a scope the gateway never issued (such as keys other
// processes keep in the same repository namespace).
func requestScope(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	if uuid.Validate(c.Value) != nil {
		return ""
	}
	return c.Value
}

// Resolve returns the store for the request's sid cookie, rehydrating from
// the repository on first sight of a scope. A request without a cookie, or
// with a cookie the gateway never issued, gets an anonymous store under a
// fresh scope. Only scopes with a persisted authenticated record are cached;
// anonymous traffic leaves no registry state behind.
func (s *Sessions) Resolve(r *http.Request) (*session.Store, string, error) {
	scope := requestScope(r)
	if scope == "" {
		return s.open(r.Context(), uuid.NewString())
	}

	s.mu.Lock()
	store, ok := s.stores[scope]
	s.mu.Unlock()
	if ok {
		return store, scope, nil
	}

	store, scope, err := s.open(r.Context(), scope)
	if err != nil {
		return nil, "", err
	}
	if !store.Authenticated() {
		return store, scope, nil
	}

	s.mu.Lock()
	if existing, raced := s.stores[scope]; raced {
		store = existing
	} else {
		s.stores[scope] = store
	}
	s.mu.Unlock()
	return store, scope, nil
}

// Begin opens an anonymous store under a freshly minted scope, ignoring any
// cookie the request carried. Login and registration go through Begin so an
// attacker-planted cookie value never becomes an authenticated scope.
func (s *Sessions) Begin(ctx context.Context) (*session.Store, string, error) {
	return s.open(ctx, uuid.NewString())
}

func (s *Sessions) open(ctx context.Context, scope string) (*session.Store, string, error) {
	repo, err := s.repos(scope)
	if err != nil {
		return nil, "", fmt.Errorf("session repository for scope: %w", err)
	}
	store, err := session.Open(ctx, session.Options{Repo: repo, Backend: s.backend})
	if err != nil {
		return nil, "", fmt.Errorf("open session store: %w", err)
	}
	return store, scope, nil
}

// Issue caches an authenticated store under its scope and sets the sid
// cookie. Only issued and rehydrated-authenticated scopes occupy the cache.
func (s *Sessions) Issue(w http.ResponseWriter, r *http.Request, scope string, store *session.Store) {
	s.mu.Lock()
	s.stores[scope] = store
	s.mu.Unlock()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    scope,
		Path:     "/",
		Domain:   s.cookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionCookieMaxAge,
	})
}

// Drop clears the sid cookie and forgets the cached store for the scope. The
// persisted record is the store's concern; callers log out first.
func (s *Sessions) Drop(w http.ResponseWriter, r *http.Request, scope string) {
	s.mu.Lock()
	delete(s.stores, scope)
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.cookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// Retire forgets a scope and clears its persisted record without touching
// cookies. Login and registration retire the scope the request arrived with
// once the identity moves to a fresh one.
func (s *Sessions) Retire(ctx context.Context, scope string) {
	if scope == "" {
		return
	}
	s.mu.Lock()
	delete(s.stores, scope)
	s.mu.Unlock()

	// Best effort: a leftover record only ever rehydrates a scope the client
	// no longer holds a cookie for.
	if repo, err := s.repos(scope); err == nil {
		_ = repo.Clear(ctx)
	}
}

// Expire logs the scope's store out and drops its cookie. Used when the
// backend rejects the bearer token.
func (s *Sessions) Expire(ctx context.Context, w http.ResponseWriter, r *http.Request, scope string) {
	s.mu.Lock()
	store := s.stores[scope]
	s.mu.Unlock()
	if store != nil {
		// Best effort: the cookie is gone either way.
		_ = store.Logout(ctx)
	} else if repo, err := s.repos(scope); err == nil {
		_ = repo.Clear(ctx)
	}
	s.Drop(w, r, scope)
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
