// Package httpx provides the HTTP surface of the TillFlow admin gateway.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tillflow/admin-api/internal/backend"
)

// LoginGateway is the slice of the backend client the login handler needs.
type LoginGateway interface {
	Login(ctx context.Context, email, password string) (backend.AuthResult, error)
}

// AuthHandlers provides HTTP handlers for the session lifecycle. Credentials
// go straight to the backend; only the opaque sid cookie reaches the browser.
type AuthHandlers struct {
	Sessions *Sessions
	Gateway  LoginGateway
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. It exchanges credentials with the
// backend and installs the resulting identity under a freshly issued scope.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	res, err := h.Gateway.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeBackendError(w, err, "login_failed")
		return
	}
	if !res.Complete() {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadGateway,
			ErrCode: "login_failed",
			Err:     errors.New("backend returned an incomplete login response"),
		})
		return
	}

	// The identity always lands on a freshly minted scope. Reusing the scope
	// the request arrived with would let a planted cookie value survive
	// authentication.
	store, scope, err := h.Sessions.Begin(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
		return
	}
	if err := store.Login(r.Context(), res.Token, *res.User); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_persist_failed", Err: err})
		return
	}

	h.Sessions.Retire(r.Context(), requestScope(r))
	h.Sessions.Issue(w, r, scope, store)
	h.logger().InfoContext(r.Context(), "login", "email", res.User.Email, "role", res.User.Role)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          res.User,
	})
}

type registerRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AdminSecret string `json:"adminSecret"`
}

// Register handles POST /api/auth/register. The backend decides whether the
// new admin is signed in immediately; when it withholds the credential the
// client is pointed at the login flow instead.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	// Registration runs on a fresh scope: if the backend signs the admin in,
	// the session must not land under a cookie value the client chose.
	store, scope, err := h.Sessions.Begin(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
		return
	}

	err = store.RegisterAdmin(r.Context(), backend.RegisterAdminInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		AdminSecret: req.AdminSecret,
	})
	if err != nil {
		writeBackendError(w, err, "registration_failed")
		return
	}

	if store.Authenticated() {
		h.Sessions.Retire(r.Context(), requestScope(r))
		h.Sessions.Issue(w, r, scope, store)
		WriteJSON(w, http.StatusCreated, map[string]any{
			"authenticated": true,
			"user":          store.User(),
		})
		return
	}

	// Registered but not signed in: the client proceeds to the login page.
	WriteJSON(w, http.StatusCreated, map[string]any{"authenticated": false})
}

// Logout handles POST /api/auth/logout. Idempotent.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	store, scope, err := h.Sessions.Resolve(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
		return
	}

	if err := store.Logout(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}
	h.Sessions.Drop(w, r, scope)
	WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPassword handles POST /api/auth/reset-password. The backend owns the
// out-of-band flow; session state never changes here.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email is required"),
		})
		return
	}

	store, _, err := h.Sessions.Resolve(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
		return
	}

	if err := store.ResetPassword(r.Context(), req.Email); err != nil {
		writeBackendError(w, err, "reset_failed")
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]string{"status": "reset email sent"})
}

// Status handles GET /api/auth/status: the rehydration check the SPA calls on
// boot to decide between the login page and the dashboard.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	store, _, err := h.Sessions.Resolve(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "session_unavailable", Err: err})
		return
	}

	if !store.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          store.User(),
	})
}

// writeBackendError translates a backend client failure into a response. A
// 401 from a credential exchange means the credentials were wrong, not that a
// session expired, so no session state is touched here.
func writeBackendError(w http.ResponseWriter, err error, fallbackCode string) {
	var bErr *backend.Error
	if !errors.As(err, &bErr) {
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: fallbackCode, Err: err})
		return
	}

	switch bErr.Kind {
	case backend.KindUnauthorized:
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "invalid_credentials", Err: bErr})
	case backend.KindBackend:
		status := bErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		WriteError(w, ErrorParams{Code: status, ErrCode: fallbackCode, Err: bErr})
	default:
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "backend_unreachable", Err: bErr})
	}
}
