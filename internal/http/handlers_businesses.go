package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// BusinessHandlers provides HTTP handlers for registered businesses.
type BusinessHandlers struct {
	Svc *service.BusinessService
}

const maxBusinessListLimit = 100

// Create handles POST /api/businesses.
func (h *BusinessHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBusinessRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	business, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, business)
}

// List handles GET /api/businesses with q/status/type filters.
func (h *BusinessHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxBusinessListLimit)
	q := r.URL.Query()
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.BusinessListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(q, "q"),
		Type:   queryStringPtr(q, "type"),
		Sort:   sort,
		Dir:    dir,
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := model.ParseBusinessStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("status must be one of: active, inactive"),
			})
			return
		}
		opts.Status = &status
	}

	businesses, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"businesses": businesses,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetByID handles GET /api/businesses/{id}.
func (h *BusinessHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("business id is required")})
		return
	}

	business, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, business)
}

// Update handles PUT /api/businesses/{id}.
func (h *BusinessHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("business id is required")})
		return
	}

	var req model.UpdateBusinessRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	business, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, business)
}

// Delete handles DELETE /api/businesses/{id}.
func (h *BusinessHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("business id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("business not found")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Stats handles GET /api/businesses/stats.
func (h *BusinessHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
