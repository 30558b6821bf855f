package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness and version information.
type HealthHandler struct {
	datasets DatasetServiceInterface
	logger   *slog.Logger
	version  string
	started  time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(datasets DatasetServiceInterface, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		datasets: datasets,
		logger:   logger.With(slog.String("component", "health_handler")),
		version:  version,
		started:  time.Now(),
	}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":        "healthy",
		"version":       h.version,
		"uptime":        time.Since(h.started).String(),
		"dataset_cache": h.datasets.StoreStats(),
	})
}

// Version handles GET /api/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"version": h.version,
	})
}
