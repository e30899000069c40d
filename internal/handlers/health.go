package handlers

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler reporting the binary's build version
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version: buildVersion(),
		logger:  logger,
	}
}

// buildVersion returns the main module version stamped by the Go toolchain,
// "(devel)" for local builds, or "unknown" when no build info is embedded
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown"
	}
	return info.Main.Version
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}, h.logger)
}
