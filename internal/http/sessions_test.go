package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/ports"
)

func newTestSessions(t *testing.T) (*Sessions, *memoryRepoFactory) {
	t.Helper()
	repos := newMemoryRepoFactory()
	sessions, err := NewSessions(SessionsOptions{Repos: repos.factory, Backend: &stubGateway{}})
	require.NoError(t, err)
	return sessions, repos
}

func seedScope(t *testing.T, repos *memoryRepoFactory, scope, token string) ports.SessionRepository {
	t.Helper()
	repo, err := repos.factory(scope)
	require.NoError(t, err)
	user := testAdminUser()
	require.NoError(t, repo.Save(context.Background(), domainauth.Session{User: &user, Token: token}))
	return repo
}

func requestWithScope(scope string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: scope})
	return r
}

// Scopes live in a shared repository namespace alongside records the gateway
// never issued, such as the operator CLI's. A cookie naming one of those must
// not reach its session.
func TestSessions_ResolveIgnoresForeignScope(t *testing.T) {
	sessions, repos := newTestSessions(t)
	seedScope(t, repos, "cli", "operator-bearer")

	store, scope, err := sessions.Resolve(requestWithScope("cli"))
	require.NoError(t, err)

	assert.NotEqual(t, "cli", scope)
	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
}

func TestSessions_ResolveIgnoresMalformedScope(t *testing.T) {
	sessions, repos := newTestSessions(t)
	seedScope(t, repos, "../other", "operator-bearer")

	store, scope, err := sessions.Resolve(requestWithScope("../other"))
	require.NoError(t, err)

	assert.NotEqual(t, "../other", scope)
	assert.False(t, store.Authenticated())
}

// Cookie-less and unknown-scope traffic must not occupy the store cache, or
// unauthenticated requests grow it without bound.
func TestSessions_AnonymousTrafficLeavesNoCachedStores(t *testing.T) {
	sessions, _ := newTestSessions(t)

	for i := 0; i < 500; i++ {
		_, _, err := sessions.Resolve(httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))
		require.NoError(t, err)
	}
	// An issued-looking scope with no record behind it stays uncached too.
	_, _, err := sessions.Resolve(requestWithScope(testScope))
	require.NoError(t, err)

	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	assert.Empty(t, sessions.stores)
}

func TestSessions_ResolveCachesAuthenticatedScope(t *testing.T) {
	sessions, repos := newTestSessions(t)
	seedScope(t, repos, testScope, "bearer-abc")

	first, scope, err := sessions.Resolve(requestWithScope(testScope))
	require.NoError(t, err)
	require.Equal(t, testScope, scope)
	require.True(t, first.Authenticated())

	second, _, err := sessions.Resolve(requestWithScope(testScope))
	require.NoError(t, err)
	assert.Same(t, first, second)

	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	assert.Len(t, sessions.stores, 1)
}

func TestSessions_ExpireClearsUncachedRecord(t *testing.T) {
	sessions, repos := newTestSessions(t)
	repo := seedScope(t, repos, testScope, "bearer-abc")

	w := httptest.NewRecorder()
	sessions.Expire(context.Background(), w, requestWithScope(testScope), testScope)

	_, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
