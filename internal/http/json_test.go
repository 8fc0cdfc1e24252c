package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tillflow/admin-api/internal/errors"
)

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/businesses", strings.NewReader(`{"name":"x","bogus":true}`))

	ok := DecodeJSON(w, r, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteAppError_MapsTaxonomyToStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: apperrors.NotFound("business not found"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "validation", err: apperrors.Validation("name is required"), wantStatus: http.StatusBadRequest, wantCode: "validation"},
		{name: "conflict", err: apperrors.Conflict("code already exists"), wantStatus: http.StatusConflict, wantCode: "conflict"},
		{name: "unknown error becomes 500", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteAppError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

func TestWriteAppError_IncludesValidationField(t *testing.T) {
	w := httptest.NewRecorder()
	WriteAppError(w, apperrors.ValidationField("scheduledFor", "schedule must be in the future"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "scheduledFor", body["field"])
}
