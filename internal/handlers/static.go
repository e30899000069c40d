package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// indexFallback is served on / when no frontend bundle is deployed
const indexFallback = "Lesson storefront API is running"

const msgImageNotFound = "Image not found"

// StaticHandler serves the frontend bundle and lesson images
type StaticHandler struct {
	frontendDir string
	imagesDir   string
	frontend    http.Handler
	logger      *slog.Logger
}

// NewStaticHandler creates a static handler for the given directories
func NewStaticHandler(frontendDir, imagesDir string, logger *slog.Logger) *StaticHandler {
	return &StaticHandler{
		frontendDir: frontendDir,
		imagesDir:   imagesDir,
		frontend:    http.FileServer(http.Dir(frontendDir)),
		logger:      logger,
	}
}

// Index handles GET /
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.frontendDir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		http.ServeFile(w, r, index)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(indexFallback)); err != nil {
		h.logger.Error("failed to write index response", "error", err)
	}
}

// Frontend serves files from the frontend bundle
func (h *StaticHandler) Frontend(w http.ResponseWriter, r *http.Request) {
	h.frontend.ServeHTTP(w, r)
}

// Images handles GET /images/*, serving the file bytes as stored.
// Every existing file is served in place, index.html included.
func (h *StaticHandler) Images(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + chi.URLParam(r, "*"))

	f, err := os.Open(filepath.Join(h.imagesDir, filepath.FromSlash(name)))
	if err != nil {
		WriteError(w, http.StatusNotFound, msgImageNotFound, h.logger)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		WriteError(w, http.StatusNotFound, msgImageNotFound, h.logger)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
