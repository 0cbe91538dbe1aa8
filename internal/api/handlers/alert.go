package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/safeguardx/safeguardx/internal/api/dto"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/errors"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/utils"
)

// AlertHandler handles alert listing and acknowledgement.
type AlertHandler struct {
	store  threat.Store
	logger *logger.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(store threat.Store, log *logger.Logger) *AlertHandler {
	return &AlertHandler{store: store, logger: log}
}

// List returns alerts, optionally only unread ones.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread_only"))

	alerts, unread := h.store.ListAlerts(unreadOnly)
	utils.WriteJSON(w, http.StatusOK, dto.AlertsResponse{
		Alerts:      alerts,
		UnreadCount: unread,
	})
}

// MarkRead marks an alert as read. Idempotent.
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid alert ID"))
		return
	}

	if err := h.store.MarkAlertRead(id); err != nil {
		utils.WriteError(w, errors.NotFound("Alert"))
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.StatusResponse{
		Status:  "success",
		Message: "Alert marked as read",
	})
}
