package http

import (
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

// uploadHistory lists the caller's upload log, newest first.
func (h *Handler) uploadHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.services.UploadHistoryService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not load upload history")
		return
	}
	if entries == nil {
		entries = []models.UploadHistoryEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
