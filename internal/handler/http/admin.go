package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) adminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.services.AdminService.Overview(r.Context())
	if err != nil {
		writeError(w, r, err, "Could not build admin overview")
		return
	}
	if overview == nil {
		overview = []models.UserOverview{}
	}

	utils.WriteJSON(w, overview, http.StatusOK)
}

func (h *Handler) adminUserFiles(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, r, ErrInvalidUserID, "User not found")
		return
	}

	files, err := h.services.AdminService.UserFiles(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not load user files")
		return
	}
	if files == nil {
		files = []models.File{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}
