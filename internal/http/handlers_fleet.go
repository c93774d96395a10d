package httpx

import (
	"net/http"

	"github.com/simbadocs/docparse/internal/service"
)

// FleetHandlers provides HTTP handlers for fleet inspection.
type FleetHandlers struct {
	Svc *service.FleetService
}

// Snapshot handles HTTP requests for a point-in-time view of the worker fleet.
// The stats key is omitted from the response when that sub-query fails.
func (h *FleetHandlers) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Svc.Snapshot(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}
