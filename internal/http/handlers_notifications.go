package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// NotificationHandlers provides HTTP handlers for platform notifications.
type NotificationHandlers struct {
	Svc *service.NotificationService
}

const maxNotificationListLimit = 100

// Create handles POST /api/notifications (compose).
func (h *NotificationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ComposeNotificationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sentBy := ""
	if sc := SessionFromContext(r.Context()); sc != nil && sc.User() != nil {
		sentBy = sc.User().Email
	}

	n, err := h.Svc.Compose(r.Context(), req, sentBy)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, n)
}

// List handles GET /api/notifications with q/type/status/audience filters.
func (h *NotificationHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxNotificationListLimit)
	q := r.URL.Query()
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.NotificationListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(q, "q"),
		Sort:   sort,
		Dir:    dir,
	}
	if raw := q.Get("type"); raw != "" {
		nt := model.NotificationType(raw)
		if !nt.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("type must be one of: maintenance, announcement, alert, info"),
			})
			return
		}
		opts.Type = &nt
	}
	if raw := q.Get("status"); raw != "" {
		status := model.NotificationStatus(raw)
		if !status.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("status must be one of: draft, scheduled, sent"),
			})
			return
		}
		opts.Status = &status
	}
	if raw := q.Get("audience"); raw != "" {
		aud := model.NotificationAudience(raw)
		if !aud.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("audience must be one of: all, merchants, admins"),
			})
			return
		}
		opts.Audience = &aud
	}

	notifications, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles GET /api/notifications/{id}.
func (h *NotificationHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("notification id is required")})
		return
	}

	n, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, n)
}

type sendNotificationRequest struct {
	Recipients int `json:"recipients"`
}

// Send handles POST /api/notifications/{id}/send: dispatches a draft or
// scheduled notification immediately.
func (h *NotificationHandlers) Send(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("notification id is required")})
		return
	}

	req := sendNotificationRequest{}
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	n, err := h.Svc.Send(r.Context(), id, req.Recipients)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, n)
}

// Delete handles DELETE /api/notifications/{id}.
func (h *NotificationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("notification id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("notification not found")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
