package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/backend"
	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// UserHandlers proxies the backend's admin user directory and the signed-in
// profile. Every call carries the session's bearer token; a 401 from the
// backend expires the session (state machine: Authenticated -> Anonymous).
type UserHandlers struct {
	Svc      *service.DirectoryService
	Sessions *Sessions
}

// List handles GET /api/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	users, err := h.Svc.ListUsers(r.Context(), sc.Token())
	if err != nil {
		h.writeProxyError(w, r, err, "list_users_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Stats handles GET /api/users/stats.
func (h *UserHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	stats, err := h.Svc.UserStats(r.Context(), sc.Token())
	if err != nil {
		h.writeProxyError(w, r, err, "user_stats_failed")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// GetByID handles GET /api/users/{id}.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	sc := SessionFromContext(r.Context())
	user, err := h.Svc.GetUser(r.Context(), sc.Token(), id)
	if err != nil {
		h.writeProxyError(w, r, err, "get_user_failed")
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PUT /api/users/{id}/role.
func (h *UserHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	var req updateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	role, ok := domainauth.ParseRole(req.Role)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("role must be one of: admin, merchant"),
		})
		return
	}

	sc := SessionFromContext(r.Context())
	if err := h.Svc.UpdateUserRole(r.Context(), sc.Token(), id, role); err != nil {
		h.writeProxyError(w, r, err, "update_role_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("user id is required")})
		return
	}

	sc := SessionFromContext(r.Context())
	if err := h.Svc.DeleteUser(r.Context(), sc.Token(), id); err != nil {
		h.writeProxyError(w, r, err, "delete_user_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Profile handles GET /api/profile.
func (h *UserHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	profile, err := h.Svc.GetProfile(r.Context(), sc.Token())
	if err != nil {
		h.writeProxyError(w, r, err, "get_profile_failed")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sc := SessionFromContext(r.Context())
	profile, err := h.Svc.UpdateProfile(r.Context(), sc.Token(), req)
	if err != nil {
		h.writeProxyError(w, r, err, "update_profile_failed")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// ChangePassword handles POST /api/profile/password.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req model.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("currentPassword and newPassword are required"),
		})
		return
	}

	sc := SessionFromContext(r.Context())
	if err := h.Svc.ChangePassword(r.Context(), sc.Token(), req); err != nil {
		h.writeProxyError(w, r, err, "change_password_failed")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

// writeProxyError handles failures from proxied backend calls. A 401 means
// the bearer token died upstream: the session is cleared before the 401 is
// surfaced so the SPA lands back on the login page.
func (h *UserHandlers) writeProxyError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	writeProxyError(w, r, h.Sessions, err, fallbackCode)
}

func writeProxyError(w http.ResponseWriter, r *http.Request, sessions *Sessions, err error, fallbackCode string) {
	if backend.IsUnauthorized(err) {
		if sc := SessionFromContext(r.Context()); sc != nil && sessions != nil {
			sessions.Expire(r.Context(), w, r, sc.Scope)
		}
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "session_expired",
			Err:     errors.New("session expired"),
		})
		return
	}
	writeBackendError(w, err, fallbackCode)
}
