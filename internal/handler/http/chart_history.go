package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
)

func (h *Handler) recordChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var entry models.ChartHistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, r, errors.Join(ErrInvalidJSON, err), "Invalid JSON was passed")
		return
	}
	// the owner always comes from the token
	entry.UserID = userID

	if _, err := h.services.ChartHistoryService.Record(r.Context(), entry); err != nil {
		writeError(w, r, err, "Could not save chart history")
		return
	}

	utils.WriteMessage(w, "Chart history saved", http.StatusCreated)
}

func (h *Handler) listCharts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	entries, err := h.services.ChartHistoryService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not load chart history")
		return
	}
	if entries == nil {
		entries = []models.ChartHistoryEntry{}
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) countCharts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	count, err := h.services.ChartHistoryService.Count(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not count chart history")
		return
	}

	utils.WriteJSON(w, models.CountResponse{Count: count}, http.StatusOK)
}
