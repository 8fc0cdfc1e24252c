package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tillflow/admin-api/internal/backend"
	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/mocks"
	"github.com/tillflow/admin-api/internal/service"
)

// testScope is in the uuid form the registry issues; Resolve ignores
// anything else.
const testScope = "3d94f9a2-6b1c-4e8f-9a57-2c0d8e14b6a3"

// newSignedInSessions builds a Sessions registry with one authenticated scope
// and returns the cookie-bearing request context for it.
func newSignedInSessions(t *testing.T) (*Sessions, *memoryRepoFactory, *http.Request) {
	t.Helper()
	repos := newMemoryRepoFactory()
	sessions, err := NewSessions(SessionsOptions{Repos: repos.factory, Backend: &stubGateway{}})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: testScope})

	store, scope, err := sessions.Resolve(r)
	require.NoError(t, err)
	require.Equal(t, testScope, scope)
	require.NoError(t, store.Login(context.Background(), "bearer-abc", testAdminUser()))

	r = r.WithContext(SetSessionInContext(r.Context(), &SessionContext{Store: store, Scope: scope}))
	return sessions, repos, r
}

func newTestUserHandlers(t *testing.T, sessions *Sessions) (*UserHandlers, *mocks.MockDirectoryGateway, *mocks.MockProfileGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	dir := mocks.NewMockDirectoryGateway(ctrl)
	prof := mocks.NewMockProfileGateway(ctrl)
	svc := service.MustNewDirectoryService(service.DirectoryServiceOptions{Directory: dir, Profiles: prof})
	return &UserHandlers{Svc: svc, Sessions: sessions}, dir, prof
}

func TestUserHandlers_List_ForwardsBearerToken(t *testing.T) {
	sessions, _, r := newSignedInSessions(t)
	handlers, dir, _ := newTestUserHandlers(t, sessions)

	dir.EXPECT().
		ListUsers(gomock.Any(), "bearer-abc").
		Return([]model.DirectoryUser{{ID: "usr-2", Email: "other@tillflow.test"}}, nil).
		Times(1)

	w := httptest.NewRecorder()
	handlers.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	users, ok := response["users"].([]any)
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func TestUserHandlers_List_Backend401ExpiresSession(t *testing.T) {
	sessions, repos, r := newSignedInSessions(t)
	handlers, dir, _ := newTestUserHandlers(t, sessions)

	dir.EXPECT().
		ListUsers(gomock.Any(), "bearer-abc").
		Return(nil, backend.ErrUnauthorized).
		Times(1)

	w := httptest.NewRecorder()
	handlers.List(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "session_expired", response["error"])

	// The session cookie is dropped.
	dropped := sessionCookie(t, w)
	require.NotNil(t, dropped)
	assert.Empty(t, dropped.Value)
	assert.Equal(t, -1, dropped.MaxAge)

	// The persisted record is cleared: a fresh resolve of the same scope
	// rehydrates anonymous.
	repo, err := repos.factory(testScope)
	require.NoError(t, err)
	_, ok, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserHandlers_UpdateRole_RejectsUnknownRole(t *testing.T) {
	sessions, _, r := newSignedInSessions(t)
	handlers, _, _ := newTestUserHandlers(t, sessions)

	req := postJSON(t, "/api/users/usr-2/role", map[string]string{"role": "superuser"})
	req.SetPathValue("id", "usr-2")
	req = req.WithContext(r.Context())

	w := httptest.NewRecorder()
	handlers.UpdateRole(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandlers_Profile_ForwardsBearerToken(t *testing.T) {
	sessions, _, r := newSignedInSessions(t)
	handlers, _, prof := newTestUserHandlers(t, sessions)

	prof.EXPECT().
		GetProfile(gomock.Any(), "bearer-abc").
		Return(&model.Profile{Email: "admin@tillflow.test"}, nil).
		Times(1)

	w := httptest.NewRecorder()
	handlers.Profile(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandlers_ChangePassword_MissingFields(t *testing.T) {
	sessions, _, r := newSignedInSessions(t)
	handlers, _, _ := newTestUserHandlers(t, sessions)

	req := postJSON(t, "/api/profile/password", map[string]string{"currentPassword": "old"})
	req = req.WithContext(r.Context())

	w := httptest.NewRecorder()
	handlers.ChangePassword(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
