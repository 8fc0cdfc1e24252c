package httpx

import (
	"net/http"

	"github.com/tillflow/admin-api/internal/service"
)

// OverviewHandlers serves the dashboard snapshot.
type OverviewHandlers struct {
	Svc      *service.OverviewService
	Sessions *Sessions
}

// Get handles GET /api/overview.
func (h *OverviewHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sc := SessionFromContext(r.Context())
	snapshot, err := h.Svc.Snapshot(r.Context(), sc.Token())
	if err != nil {
		writeProxyError(w, r, h.Sessions, err, "overview_failed")
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}
