package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/safeguardx/safeguardx/internal/api/dto"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/errors"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/utils"
	"github.com/safeguardx/safeguardx/internal/services"
)

const defaultHistoryLimit = 100

// ThreatHandler handles threat listing and incident response requests.
type ThreatHandler struct {
	store  threat.Store
	engine *services.ResponseEngine
	logger *logger.Logger
}

// NewThreatHandler creates a new threat handler.
func NewThreatHandler(store threat.Store, engine *services.ResponseEngine, log *logger.Logger) *ThreatHandler {
	return &ThreatHandler{store: store, engine: engine, logger: log}
}

// ListActive returns all currently active threats.
func (h *ThreatHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	threats := h.store.ListActive()
	utils.WriteJSON(w, http.StatusOK, dto.ActiveThreatsResponse{
		Threats: threats,
		Count:   len(threats),
	})
}

// History returns up to limit most recent threats.
func (h *ThreatHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	threats, total := h.store.ListHistory(limit)
	utils.WriteJSON(w, http.StatusOK, dto.ThreatHistoryResponse{
		Threats: threats,
		Total:   total,
	})
}

// Respond initiates automated incident response against an active threat.
func (h *ThreatHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid threat ID"))
		return
	}

	req := dto.RespondRequest{Action: threat.PlaybookAutoMitigate}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid request body"))
			return
		}
		if req.Action == "" {
			req.Action = threat.PlaybookAutoMitigate
		}
	}

	if err := h.engine.Respond(id, req.Action); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.RespondResponse{
		Status:       "success",
		Message:      fmt.Sprintf("Automated response initiated for threat %d", id),
		ResponseType: req.Action,
	})
}
