package handlers

import (
	"net/http"

	"stagefront/internal/services"
)

// 10 MB cap on upload bodies.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	files services.FileStore
}

func NewUploadHandler(files services.FileStore) *UploadHandler {
	return &UploadHandler{files: files}
}

// Upload stores one multipart file and returns its public URL and storage
// key. The key is what the admin form echoes back so later edits can diff
// against stored keys.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "file field is required")
		return
	}
	defer file.Close()

	stored, err := h.files.Store(r.Context(), file, header.Filename)
	if err != nil {
		writeRepoError(w, err, "upload")
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}
