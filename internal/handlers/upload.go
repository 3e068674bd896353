package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"textile-backend/internal/storage"
)

const maxUploadSize = 10 << 20 // 10 MB

// Award certificates and showcase images are the only uploads.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
}

// UploadHandler handles file upload requests through the storage.Store
// interface, so local disk and R2 behave identically to callers.
type UploadHandler struct {
	store     storage.Store
	uploadDir string
}

// NewUploadHandler creates an UploadHandler with the given storage backend.
func NewUploadHandler(store storage.Store, uploadDir string) *UploadHandler {
	return &UploadHandler{store: store, uploadDir: uploadDir}
}

// Upload handles POST /api/upload with a multipart "file" field.
// The content type is sniffed from the file itself rather than trusting
// the client's header.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		JSONError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Missing 'file' field in form data.")
		return
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		JSONError(w, http.StatusBadRequest, "Could not read file.")
		return
	}
	contentType := http.DetectContentType(buffer[:n])

	if !allowedUploadTypes[contentType] {
		JSONError(w, http.StatusBadRequest, fmt.Sprintf(
			"File type '%s' not allowed. Accepted: PDF, JPG, PNG, WEBP.", contentType,
		))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		JSONError(w, http.StatusInternalServerError, "Failed to process file.")
		return
	}

	// Optional "category" field organizes files (e.g. "certificates").
	category := r.FormValue("category")
	if category == "" {
		category = "general"
	}

	safeName := sanitizeFilename(header.Filename)
	storagePath := fmt.Sprintf("%s/%d_%s", category, time.Now().Unix(), safeName)

	info, err := h.store.Save(r.Context(), storagePath, file, contentType)
	if err != nil {
		log.Printf("Upload failed: %v", err)
		JSONError(w, http.StatusInternalServerError, "Failed to save file.")
		return
	}

	JSON(w, http.StatusOK, info)
}

// ServeFile handles GET /api/files/*
// R2-backed files redirect to the public CDN URL; local files are served
// from disk.
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filePath := strings.TrimPrefix(r.URL.Path, "/api/files/")
	if filePath == "" {
		JSONError(w, http.StatusBadRequest, "File path required.")
		return
	}

	if url := h.store.URL(filePath); strings.HasPrefix(url, "https://") {
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.uploadDir, filepath.Clean(filePath)))
}

// sanitizeFilename strips directory components and URL-unsafe spaces.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
