package handlers

import (
	"net/http"

	"github.com/safeguardx/safeguardx/internal/pkg/utils"
	"github.com/safeguardx/safeguardx/internal/services"
)

// DashboardHandler serves the aggregate dashboard snapshot.
type DashboardHandler struct {
	reporting *services.ReportingService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(reporting *services.ReportingService) *DashboardHandler {
	return &DashboardHandler{reporting: reporting}
}

// Metrics returns the real-time dashboard metrics.
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.reporting.Dashboard())
}
