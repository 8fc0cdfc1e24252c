package httpx

import (
	"errors"
	"net/http"

	"github.com/tillflow/admin-api/internal/domain/model"
	"github.com/tillflow/admin-api/internal/service"
)

// CurrencyHandlers provides HTTP handlers for supported currencies.
type CurrencyHandlers struct {
	Svc *service.CurrencyService
}

// Create handles POST /api/currencies.
func (h *CurrencyHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCurrencyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	currency, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, currency)
}

// List handles GET /api/currencies. The default currency sorts first.
func (h *CurrencyHandlers) List(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"currencies": currencies})
}

// GetByID handles GET /api/currencies/{id}.
func (h *CurrencyHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("currency id is required")})
		return
	}

	currency, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, currency)
}

// Update handles PUT /api/currencies/{id}.
func (h *CurrencyHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("currency id is required")})
		return
	}

	var req model.UpdateCurrencyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	currency, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, currency)
}

// SetDefault handles PUT /api/currencies/{id}/default.
func (h *CurrencyHandlers) SetDefault(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("currency id is required")})
		return
	}

	currency, err := h.Svc.SetDefault(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, currency)
}

// Delete handles DELETE /api/currencies/{id}. The default currency is refused.
func (h *CurrencyHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("currency id is required")})
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("currency not found")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
