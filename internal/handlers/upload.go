package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10MB per request

// allowedImageExts lists the accepted evidence photo formats
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// uploadFiles stores multipart image files and returns their public URLs.
// Files are renamed to UUIDs so originals can never collide or be guessed.
func (r *Router) uploadFiles(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadSize)
	if err := req.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload or file too large")
		return
	}

	files := req.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "No files provided")
		return
	}

	if err := os.MkdirAll(r.cfg.UploadDir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "Upload directory unavailable")
		return
	}

	var urls []string
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExts[ext] {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("File type %s not allowed", ext))
			return
		}

		src, err := header.Open()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to read uploaded file")
			return
		}

		name := uuid.New().String() + ext
		dst, err := os.Create(filepath.Join(r.cfg.UploadDir, name))
		if err != nil {
			src.Close()
			respondError(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}

		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to store uploaded file")
			return
		}

		urls = append(urls, r.cfg.PublicURL+"/uploads/"+name)
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"urls": urls,
	})
}
