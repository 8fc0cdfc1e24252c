package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// TokenHandlers provides HTTP handlers for platform token management.
type TokenHandlers struct {
	Svc *service.TokenService
}

const maxTokenListLimit = 100

// Create handles POST /api/tokens. The response is the only place the full
// secret ever appears; subsequent reads are masked.
func (h *TokenHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTokenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	createdBy := ""
	if sc := SessionFromContext(r.Context()); sc != nil && sc.User() != nil {
		createdBy = sc.User().Email
	}

	tok, err := h.Svc.Create(r.Context(), req, createdBy)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tok)
}

// List handles GET /api/tokens with q/type/status filters.
func (h *TokenHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxTokenListLimit)
	q := r.URL.Query()
	sort, dir := ParseSortParam(q, "sort", "dir")

	opts := model.TokenListOptions{
		Limit:  limit,
		Offset: offset,
		Q:      queryStringPtr(q, "q"),
		Sort:   sort,
		Dir:    dir,
	}
	if raw := q.Get("type"); raw != "" {
		tt, ok := model.ParseTokenType(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("type must be one of: payment, api, access, integration"),
			})
			return
		}
		opts.Type = &tt
	}
	if raw := q.Get("status"); raw != "" {
		status, ok := model.ParseTokenStatus(raw)
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "validation_failed",
				Err:     errors.New("status must be one of: active, inactive, expired"),
			})
			return
		}
		opts.Status = &status
	}

	tokens, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"tokens": tokens,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles GET /api/tokens/{id}.
func (h *TokenHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("token id is required")})
		return
	}

	tok, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tok)
}

// Update handles PUT /api/tokens/{id}.
func (h *TokenHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("token id is required")})
		return
	}

	var req model.UpdateTokenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	tok, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tok)
}

// Delete handles DELETE /api/tokens/{id} (revocation).
func (h *TokenHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("token id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("token not found")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
