package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/safeguardx/safeguardx/internal/api/handlers"
	"github.com/safeguardx/safeguardx/internal/api/router"
	"github.com/safeguardx/safeguardx/internal/config"
	"github.com/safeguardx/safeguardx/internal/detector"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/validator"
	"github.com/safeguardx/safeguardx/internal/repository/memory"
	"github.com/safeguardx/safeguardx/internal/services"
	"github.com/safeguardx/safeguardx/internal/worker"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	logger.Init(logCfg)
	log := logger.New(logCfg)

	log.Infof("starting SafeGuard X API v%s (env: %s)", version, cfg.Server.Environment)

	// Storage and detection pipeline
	store := memory.NewThreatStore()
	scorer := detector.NewDefaultScorer()

	// Async response infrastructure
	pool := worker.NewPool(cfg.Response.Workers, log)
	mitigator := services.NewSimulatedMitigator(cfg.Response.MitigationStepDelay)
	engine := services.NewResponseEngine(store, pool, mitigator, cfg.Response, log)

	detection := services.NewDetectionService(scorer, store, engine, cfg.Detection.Threshold, log)
	reporting := services.NewReportingService(store)
	scan := services.NewScanService(cfg.Detection.MaxUploadBytes, log)

	val := validator.New()

	h := &router.Handlers{
		Health:    handlers.NewHealthHandler(version),
		Analyze:   handlers.NewAnalyzeHandler(detection, log, val),
		Threat:    handlers.NewThreatHandler(store, engine, log),
		Alert:     handlers.NewAlertHandler(store, log),
		Dashboard: handlers.NewDashboardHandler(reporting),
		Scan:      handlers.NewScanHandler(scan, log),
	}

	var refresher *worker.MetricsRefresher
	if cfg.Metrics.Enabled {
		refresher = worker.NewMetricsRefresher(store, cfg.Metrics.RefreshSchedule, log)
		if err := refresher.Start(); err != nil {
			log.ErrorWithErr(err, "failed to start metrics refresher")
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("server error: %v", err)
	case sig := <-quit:
		log.Infof("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "graceful shutdown failed")
	}
	if refresher != nil {
		refresher.Stop()
	}
	if err := pool.Stop(ctx); err != nil {
		log.ErrorWithErr(err, "worker pool drain timed out")
	}

	log.Info("shutdown complete")
}
