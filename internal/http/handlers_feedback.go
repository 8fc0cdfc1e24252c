package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// FeedbackHandlers provides HTTP handlers for user feedback triage.
type FeedbackHandlers struct {
	Svc *service.FeedbackService
}

const maxFeedbackListLimit = 100

// Submit handles POST /api/feedback.
func (h *FeedbackHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitFeedbackRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	// Submissions carry the signed-in identity unless the payload overrides it.
	if sc := SessionFromContext(r.Context()); sc != nil && sc.User() != nil && req.UserEmail == "" {
		req.UserName = sc.User().FullName
		req.UserEmail = sc.User().Email
		req.UserRole = sc.User().Role
	}

	fb, err := h.Svc.Submit(r.Context(), req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, fb)
}

// List handles GET /api/feedback with q/category/status filters.
func (h *FeedbackHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxFeedbackListLimit)
	q := r.URL.Query()
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.FeedbackListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(q, "q"),
		Sort:   sort,
		Dir:    dir,
	}
	if raw := q.Get("category"); raw != "" {
		cat := model.FeedbackCategory(raw)
		if !cat.Valid() {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("category must be one of: bug, feature, improvement, question, other"),
			})
			return
		}
		opts.Category = &cat
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := model.ParseFeedbackStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("status must be one of: pending, reviewed, resolved, closed"),
			})
			return
		}
		opts.Status = &status
	}

	items, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"feedback": items,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles GET /api/feedback/{id}.
func (h *FeedbackHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("feedback id is required")})
		return
	}

	fb, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, fb)
}

// Respond handles POST /api/feedback/{id}/respond.
func (h *FeedbackHandlers) Respond(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("feedback id is required")})
		return
	}

	var req model.RespondFeedbackRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	fb, err := h.Svc.Respond(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, fb)
}

type setFeedbackStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus handles PUT /api/feedback/{id}/status.
func (h *FeedbackHandlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("feedback id is required")})
		return
	}

	var req setFeedbackStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	status, ok := model.ParseFeedbackStatus(req.Status)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("status must be one of: pending, reviewed, resolved, closed"),
		})
		return
	}

	fb, err := h.Svc.SetStatus(r.Context(), id, status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, fb)
}

// Delete handles DELETE /api/feedback/{id}.
func (h *FeedbackHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("feedback id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("feedback not found")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
