package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillflow/admin-api/internal/adapters/memory"
	"github.com/tillflow/admin-api/internal/backend"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/ports"
)

// stubGateway fakes the backend auth surface for handler tests. It satisfies
// both ports.AuthGateway and LoginGateway.
type stubGateway struct {
	loginResult    backend.AuthResult
	loginErr       error
	registerResult backend.AuthResult
	registerErr    error
	resetErr       error
}

func (g *stubGateway) Login(_ context.Context, _, _ string) (backend.AuthResult, error) {
	return g.loginResult, g.loginErr
}

func (g *stubGateway) RegisterAdmin(_ context.Context, _ backend.RegisterAdminInput) (backend.AuthResult, error) {
	return g.registerResult, g.registerErr
}

func (g *stubGateway) ResetPassword(_ context.Context, _ string) error {
	return g.resetErr
}

// memoryRepoFactory hands out one in-memory repository per scope so that a
// scope observed twice rehydrates from the same record.
type memoryRepoFactory struct {
	mu    sync.Mutex
	repos map[string]*memory.SessionRepo
}

func newMemoryRepoFactory() *memoryRepoFactory {
	return &memoryRepoFactory{repos: make(map[string]*memory.SessionRepo)}
}

func (f *memoryRepoFactory) factory(scope string) (ports.SessionRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	repo, ok := f.repos[scope]
	if !ok {
		repo = memory.NewSessionRepo()
		f.repos[scope] = repo
	}
	return repo, nil
}

func newTestAuthHandlers(t *testing.T, gw *stubGateway) (*AuthHandlers, *memoryRepoFactory) {
	t.Helper()
	repos := newMemoryRepoFactory()
	sessions, err := NewSessions(SessionsOptions{Repos: repos.factory, Backend: gw})
	require.NoError(t, err)
	return &AuthHandlers{Sessions: sessions, Gateway: gw}, repos
}

func testAdminUser() domainauth.User {
	return domainauth.User{
		ID:       "usr-1",
		Email:    "admin@tillflow.test",
		FullName: "Test Admin",
		Role:     domainauth.RoleAdmin,
		Verified: true,
	}
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func postJSON(t *testing.T, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestAuthHandlers_Login_Success(t *testing.T) {
	user := testAdminUser()
	gw := &stubGateway{loginResult: backend.AuthResult{User: &user, Token: "bearer-abc"}}
	handlers, _ := newTestAuthHandlers(t, gw)

	w := httptest.NewRecorder()
	handlers.Login(w, postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "hunter2!",
	}))

	assert.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie, "login must issue the sid cookie")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["authenticated"])
	respUser, ok := response["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin@tillflow.test", respUser["email"])
}

func TestAuthHandlers_Login_InvalidCredentials(t *testing.T) {
	gw := &stubGateway{loginErr: backend.ErrUnauthorized}
	handlers, _ := newTestAuthHandlers(t, gw)

	w := httptest.NewRecorder()
	handlers.Login(w, postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(t, w), "failed login must not issue a cookie")

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "invalid_credentials", response["error"])
}

func TestAuthHandlers_Login_RotatesPlantedScope(t *testing.T) {
	const planted = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
	user := testAdminUser()
	gw := &stubGateway{loginResult: backend.AuthResult{User: &user, Token: "bearer-abc"}}
	handlers, repos := newTestAuthHandlers(t, gw)

	// An attacker who planted a known cookie value must not end up owning
	// the victim's authenticated scope.
	r := postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "hunter2!",
	})
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: planted})

	w := httptest.NewRecorder()
	handlers.Login(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.NotEqual(t, planted, cookie.Value)

	// Nothing is persisted under the planted scope.
	plantedRepo, err := repos.factory(planted)
	require.NoError(t, err)
	_, ok, err := plantedRepo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	// The session lives under the freshly issued scope.
	issuedRepo, err := repos.factory(cookie.Value)
	require.NoError(t, err)
	sess, ok, err := issuedRepo.Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bearer-abc", sess.Token)
}

func TestAuthHandlers_Register_RotatesPlantedScope(t *testing.T) {
	const planted = "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d"
	user := testAdminUser()
	gw := &stubGateway{registerResult: backend.AuthResult{User: &user, Token: "bearer-new"}}
	handlers, repos := newTestAuthHandlers(t, gw)

	r := postJSON(t, "/api/auth/register", map[string]string{
		"fullName":    "Test Admin",
		"email":       "admin@tillflow.test",
		"password":    "hunter2!",
		"adminSecret": "let-me-in",
	})
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: planted})

	w := httptest.NewRecorder()
	handlers.Register(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := sessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.NotEqual(t, planted, cookie.Value)

	plantedRepo, err := repos.factory(planted)
	require.NoError(t, err)
	_, ok, err := plantedRepo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthHandlers_Login_MissingFields(t *testing.T) {
	handlers, _ := newTestAuthHandlers(t, &stubGateway{})

	w := httptest.NewRecorder()
	handlers.Login(w, postJSON(t, "/api/auth/login", map[string]string{"email": "  "}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlers_Login_BackendDown(t *testing.T) {
	gw := &stubGateway{loginErr: &backend.Error{Kind: backend.KindTransport, Cause: context.DeadlineExceeded}}
	handlers, _ := newTestAuthHandlers(t, gw)

	w := httptest.NewRecorder()
	handlers.Login(w, postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "hunter2!",
	}))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "backend_unreachable", response["error"])
}

func TestAuthHandlers_Status_RehydratesPersistedSession(t *testing.T) {
	user := testAdminUser()
	gw := &stubGateway{loginResult: backend.AuthResult{User: &user, Token: "bearer-abc"}}
	handlers, _ := newTestAuthHandlers(t, gw)

	// Sign in to persist the session and capture the cookie.
	loginRec := httptest.NewRecorder()
	handlers.Login(loginRec, postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "hunter2!",
	}))
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookie := sessionCookie(t, loginRec)
	require.NotNil(t, cookie)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	r.AddCookie(cookie)
	handlers.Status(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["authenticated"])
}

func TestAuthHandlers_Status_AnonymousWithoutCookie(t *testing.T) {
	handlers, _ := newTestAuthHandlers(t, &stubGateway{})

	w := httptest.NewRecorder()
	handlers.Status(w, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["authenticated"])
}

func TestAuthHandlers_Register_CompleteResponseSignsIn(t *testing.T) {
	user := testAdminUser()
	gw := &stubGateway{registerResult: backend.AuthResult{User: &user, Token: "bearer-new"}}
	handlers, _ := newTestAuthHandlers(t, gw)

	w := httptest.NewRecorder()
	handlers.Register(w, postJSON(t, "/api/auth/register", map[string]string{
		"fullName":    "Test Admin",
		"email":       "admin@tillflow.test",
		"password":    "hunter2!",
		"adminSecret": "let-me-in",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, sessionCookie(t, w))

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["authenticated"])
}

func TestAuthHandlers_Register_IncompleteResponseStaysAnonymous(t *testing.T) {
	// Backend acknowledges the account but withholds the credential.
	gw := &stubGateway{registerResult: backend.AuthResult{}}
	handlers, _ := newTestAuthHandlers(t, gw)

	w := httptest.NewRecorder()
	handlers.Register(w, postJSON(t, "/api/auth/register", map[string]string{
		"fullName":    "Test Admin",
		"email":       "admin@tillflow.test",
		"password":    "hunter2!",
		"adminSecret": "let-me-in",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, sessionCookie(t, w))

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["authenticated"])
}

func TestAuthHandlers_Logout_ClearsSessionAndCookie(t *testing.T) {
	user := testAdminUser()
	gw := &stubGateway{loginResult: backend.AuthResult{User: &user, Token: "bearer-abc"}}
	handlers, repos := newTestAuthHandlers(t, gw)

	loginRec := httptest.NewRecorder()
	handlers.Login(loginRec, postJSON(t, "/api/auth/login", map[string]string{
		"email":    "admin@tillflow.test",
		"password": "hunter2!",
	}))
	cookie := sessionCookie(t, loginRec)
	require.NotNil(t, cookie)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(cookie)
	handlers.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	dropped := sessionCookie(t, w)
	require.NotNil(t, dropped)
	assert.Empty(t, dropped.Value)
	assert.Equal(t, -1, dropped.MaxAge)

	// The persisted record is gone, so a new request rehydrates anonymous.
	repo, err := repos.factory(cookie.Value)
	require.NoError(t, err)
	_, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthHandlers_Logout_IdempotentWithoutSession(t *testing.T) {
	handlers, _ := newTestAuthHandlers(t, &stubGateway{})

	w := httptest.NewRecorder()
	handlers.Logout(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["authenticated"])
}

func TestAuthHandlers_ResetPassword(t *testing.T) {
	handlers, _ := newTestAuthHandlers(t, &stubGateway{})

	w := httptest.NewRecorder()
	handlers.ResetPassword(w, postJSON(t, "/api/auth/reset-password", map[string]string{
		"email": "admin@tillflow.test",
	}))

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestAuthHandlers_ResetPassword_MissingEmail(t *testing.T) {
	handlers, _ := newTestAuthHandlers(t, &stubGateway{})

	w := httptest.NewRecorder()
	handlers.ResetPassword(w, postJSON(t, "/api/auth/reset-password", map[string]string{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
