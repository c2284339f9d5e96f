// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	content, header, err := h.readUploadedFile(w, r)
	if err != nil {
		writeError(w, r, err, "Upload failed")
		return
	}

	result, err := h.services.FileService.Upload(r.Context(), models.UploadRequest{
		UserID:   userID,
		FileName: header.name,
		MimeType: header.contentType,
		Size:     header.size,
		Content:  content,
	})
	if err != nil {
		writeError(w, r, err, "Upload failed")
		return
	}

	logger.FromRequest(r).Info().
		Int64("user_id", userID).
		Str("file_id", result.File.ID).
		Int("rows", result.ParsedRows).
		Msg("file uploaded")

	utils.WriteJSON(w, models.UploadResponse{
		Message:    "File uploaded and parsed successfully",
		File:       result.File,
		ParsedRows: result.ParsedRows,
	}, http.StatusOK)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	files, err := h.services.FileService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "Could not list files")
		return
	}
	if files == nil {
		files = []models.File{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}

func (h *Handler) fileData(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	parsed, err := h.services.FileService.GetParsedRows(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, r, err, "Could not load file data")
		return
	}

	rows := parsed.Rows
	if rows == nil {
		rows = []models.Row{}
	}
	utils.WriteJSON(w, models.ParsedRowsResponse{Data: rows}, http.StatusOK)
}

func (h *Handler) downloadFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	file, err := h.services.FileService.Download(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, r, err, "Could not download file")
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName})
	if disposition == "" {
		disposition = fmt.Sprintf("attachment; filename=%q", file.FileName)
	}

	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	fileID := chi.URLParam(r, "id")
	if err := h.services.FileService.Delete(r.Context(), fileID, userID); err != nil {
		writeError(w, r, err, "Could not delete file")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", userID).Str("file_id", fileID).Msg("file deleted")
	utils.WriteMessage(w, "File and parsed data deleted", http.StatusOK)
}

func (h *Handler) fileInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	lines, err := h.services.FileService.Insights(r.Context(), chi.URLParam(r, "fileId"), userID)
	if err != nil {
		writeError(w, r, err, "Could not generate insights")
		return
	}

	utils.WriteJSON(w, models.InsightsResponse{Insights: lines}, http.StatusOK)
}
