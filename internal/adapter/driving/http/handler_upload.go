package httphandler

import (
	"errors"
	"net/http"
)

// Upload stores a multipart image and returns its public URL. The file is
// written verbatim; the stored name is generated server-side so client file
// names never reach the filesystem.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "no file")
		return
	}
	defer file.Close()

	name, err := h.uploads.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("failed to store upload", "name", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: "/uploads/" + name})
}
