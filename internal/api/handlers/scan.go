package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safeguardx/safeguardx/internal/api/dto"
	"github.com/safeguardx/safeguardx/internal/pkg/errors"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/utils"
	"github.com/safeguardx/safeguardx/internal/services"
)

// ScanHandler handles file scan uploads and scan metadata endpoints.
type ScanHandler struct {
	service *services.ScanService
	logger  *logger.Logger
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(service *services.ScanService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{service: service, logger: log}
}

// Scan accepts a multipart file upload and returns its scan verdict.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxUploadBytes())
	if err := r.ParseMultipartForm(h.service.MaxUploadBytes()); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, errors.Internal("Failed to read uploaded file", err))
		return
	}

	result, err := h.service.ScanFile(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// History returns stored scan results. Persistence is not wired, so the
// list is always empty.
func (h *ScanHandler) History(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, dto.ScanHistoryResponse{
		Scans:   []interface{}{},
		Total:   0,
		Message: "Scan history requires database persistence",
	})
}

// Lookup reports whether a file hash is a known threat.
func (h *ScanHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if hash == "" {
		utils.WriteError(w, errors.BadRequest("Missing hash"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.service.LookupHash(hash))
}

// Stats returns scanner statistics.
func (h *ScanHandler) Stats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.service.Stats())
}

// Config returns the scanner configuration.
func (h *ScanHandler) Config(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.service.Config())
}
