package handlers

import (
	"net/http"
	"time"

	"github.com/safeguardx/safeguardx/internal/pkg/utils"
)

// HealthHandler serves liveness and service identity endpoints.
type HealthHandler struct {
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, startedAt: time.Now()}
}

// Root identifies the service.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "SafeGuard X Security Operations API",
		"status":  "operational",
		"version": h.version,
	})
}

// Health reports service liveness.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}
