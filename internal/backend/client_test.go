package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "not a url"})
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "ftp://example.com"})
	require.Error(t, err)

	client, err := NewClient(Config{BaseURL: "https://tillflow-backend.onrender.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "https://tillflow-backend.onrender.com/api", client.baseURL)
}

func TestClient_Login_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"token":   "tok-abc",
			"user": map[string]any{
				"_id":              "u1",
				"email":            "a@b.com",
				"fullName":         "A B",
				"role":             "merchant",
				"verified":         true,
				"profileCompleted": true,
			},
		})
	})

	res, err := client.Login(context.Background(), "a@b.com", "hunter22")
	require.NoError(t, err)
	assert.True(t, res.Complete())
	assert.Equal(t, "tok-abc", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, "u1", res.User.ID, "Mongo-style _id accepted")
	assert.Equal(t, domainauth.RoleMerchant, res.User.Role)
}

func TestClient_RegisterAdmin_BackendRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{"message": "secret invalid"})
	})

	_, err := client.RegisterAdmin(context.Background(), RegisterAdminInput{AdminSecret: "nope"})

	require.Error(t, err)
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindBackend, be.Kind)
	assert.Equal(t, http.StatusBadRequest, be.StatusCode)
	assert.Equal(t, "secret invalid", err.Error())
}

func TestClient_RegisterAdmin_SuccessFalseOn200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": false, "message": "registration failed"})
	})

	_, err := client.RegisterAdmin(context.Background(), RegisterAdminInput{})

	require.Error(t, err)
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindBackend, be.Kind)
	assert.Equal(t, "registration failed", be.Message)
}

func TestClient_RegisterAdmin_NoCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	})

	res, err := client.RegisterAdmin(context.Background(), RegisterAdminInput{})
	require.NoError(t, err)
	assert.False(t, res.Complete())
}

func TestClient_ListUsers_AttachesBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"users": []map[string]any{
				{"_id": "u1", "email": "a@b.com", "fullName": "A B", "role": "admin"},
				{"_id": "u2", "email": "c@d.com", "fullName": "C D", "role": "merchant"},
			},
		})
	})

	users, err := client.ListUsers(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
	assert.Equal(t, domainauth.RoleMerchant, users[1].Role)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "token expired"})
	})

	_, err := client.UserStats(context.Background(), "stale")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "token expired", be.Message)
}

func TestClient_TransportError(t *testing.T) {
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.ListUsers(context.Background(), "tok")

	require.Error(t, err)
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindTransport, be.Kind)
	assert.False(t, IsUnauthorized(err))
}

func TestClient_MalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"users": [`))
	})

	_, err := client.ListUsers(context.Background(), "tok")

	require.Error(t, err)
	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, KindTransport, be.Kind)
}

func TestClient_UpdateUserRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/u1/role", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["role"])
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	})

	err := client.UpdateUserRole(context.Background(), "tok", "u1", domainauth.RoleAdmin)
	require.NoError(t, err)
}

func TestClient_ResetPassword_FallbackMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.ResetPassword(context.Background(), "a@b.com")

	require.Error(t, err)
	assert.Equal(t, "failed to request password reset", err.Error())
}

func TestClient_GetProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/profile", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{"_id": "u1", "email": "a@b.com", "fullName": "A B", "role": "admin"},
		})
	})

	profile, err := client.GetProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, domainauth.RoleAdmin, profile.Role)
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}
