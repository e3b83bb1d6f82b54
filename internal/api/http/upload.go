package http

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pujcovna-backend/internal/logger"
)

const maxUploadBytes = 5 << 20

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// UploadHandler stores equipment images on local disk and serves them back
// under the public uploads path.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &UploadHandler{dir: dir}, nil
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed upload", "VALIDATION")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file", "VALIDATION")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		writeError(w, http.StatusBadRequest, "unsupported image type", "VALIDATION")
		return
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		logger.Error("Failed to create upload file", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store image", "INTERNAL")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		logger.Error("Failed to write upload file", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store image", "INTERNAL")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"imageUrl": "/uploads/" + name})
}
