package services

import (
	"github.com/safeguardx/safeguardx/internal/detector"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/metrics"
)

// AnalysisResult is the outcome of analyzing a single log event. Threat
// and Alert are nil when the score stayed below the detection threshold.
type AnalysisResult struct {
	LogID  int64
	Score  float64
	Threat *threat.Threat
	Alert  *threat.Alert
}

// Detected reports whether the analysis materialized a threat.
func (r *AnalysisResult) Detected() bool {
	return r.Threat != nil
}

// DetectionService runs the analysis pipeline: score the event, and above
// threshold classify it, materialize a threat plus alert, and kick off
// the automated response when the classification demands it.
type DetectionService struct {
	scorer    *detector.Scorer
	store     threat.Store
	engine    *ResponseEngine
	threshold float64
	logger    *logger.Logger
}

// NewDetectionService creates a detection service.
func NewDetectionService(scorer *detector.Scorer, store threat.Store, engine *ResponseEngine, threshold float64, log *logger.Logger) *DetectionService {
	return &DetectionService{
		scorer:    scorer,
		store:     store,
		engine:    engine,
		threshold: threshold,
		logger:    log,
	}
}

// Analyze processes one log event. It always succeeds; whether a threat
// was detected is part of the result.
func (s *DetectionService) Analyze(event threat.LogEvent) *AnalysisResult {
	score := s.scorer.Score(event)
	logID := s.store.NextLogID()
	metrics.RecordLogAnalyzed()

	result := &AnalysisResult{
		LogID: logID,
		Score: score,
	}

	if score <= s.threshold {
		return result
	}

	classification := s.scorer.Classify(score, event.Source)
	t := s.store.CreateThreat(logID, event.Source, classification, score)
	a := s.store.CreateAlert(t)
	metrics.RecordThreatDetected(t.Severity, t.Category)

	result.Threat = t
	result.Alert = a

	s.logger.WithFields(map[string]interface{}{
		"threat_id": t.ID,
		"log_id":    logID,
		"source":    event.Source,
		"severity":  t.Severity,
		"category":  t.Category,
		"score":     score,
	}).Info("Threat detected")

	if classification.ImmediateAction {
		s.engine.ScheduleAutoResponse(t.ID)
	}

	return result
}
