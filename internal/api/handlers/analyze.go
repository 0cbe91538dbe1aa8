package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/safeguardx/safeguardx/internal/api/dto"
	"github.com/safeguardx/safeguardx/internal/pkg/errors"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/utils"
	"github.com/safeguardx/safeguardx/internal/pkg/validator"
	"github.com/safeguardx/safeguardx/internal/services"
)

// AnalyzeHandler handles real-time log analysis requests.
type AnalyzeHandler struct {
	service   *services.DetectionService
	logger    *logger.Logger
	validator *validator.Validator
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(service *services.DetectionService, log *logger.Logger, val *validator.Validator) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, logger: log, validator: val}
}

// Analyze scores a log event and materializes a threat plus alert when
// the score crosses the detection threshold.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	result := h.service.Analyze(req.ToEvent())

	resp := dto.AnalyzeResponse{
		LogID:        result.LogID,
		AnomalyScore: result.Score,
		Status:       "processed",
	}
	if result.Detected() {
		resp.ThreatDetected = true
		resp.Threat = result.Threat
		resp.Alert = result.Alert
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
