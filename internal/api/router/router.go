package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/safeguardx/safeguardx/internal/api/handlers"
	"github.com/safeguardx/safeguardx/internal/api/middleware"
	"github.com/safeguardx/safeguardx/internal/config"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/metrics"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Analyze   *handlers.AnalyzeHandler
	Threat    *handlers.ThreatHandler
	Alert     *handlers.AlertHandler
	Dashboard *handlers.DashboardHandler
	Scan      *handlers.ScanHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware)
	}

	// Service identity and health
	r.Get("/", h.Health.Root)
	r.Get("/health", h.Health.Health)
	r.Get("/healthz", h.Health.Health)

	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	// Core detection and response endpoints (v1)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", h.Analyze.Analyze)
		r.Get("/threats/active", h.Threat.ListActive)
		r.Get("/threats/history", h.Threat.History)
		r.Post("/threats/{id}/respond", h.Threat.Respond)
		r.Get("/alerts", h.Alert.List)
		r.Put("/alerts/{id}/read", h.Alert.MarkRead)
		r.Get("/dashboard/metrics", h.Dashboard.Metrics)
	})

	// Aliases for frontend compatibility
	r.Post("/analyze", h.Analyze.Analyze)
	r.Get("/threats/active", h.Threat.ListActive)
	r.Get("/threats/history", h.Threat.History)
	r.Post("/threats/{id}/respond", h.Threat.Respond)
	r.Get("/alerts", h.Alert.List)
	r.Put("/alerts/{id}/read", h.Alert.MarkRead)
	r.Get("/dashboard/metrics", h.Dashboard.Metrics)

	// File scanning endpoints
	r.Post("/api/scan", h.Scan.Scan)
	r.Get("/api/scans", h.Scan.History)
	r.Get("/api/lookup/{hash}", h.Scan.Lookup)
	r.Get("/api/stats", h.Scan.Stats)
	r.Get("/api/config", h.Scan.Config)

	return r
}
