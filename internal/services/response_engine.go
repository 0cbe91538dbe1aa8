package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/safeguardx/safeguardx/internal/config"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	apperrors "github.com/safeguardx/safeguardx/internal/pkg/errors"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/metrics"
	"github.com/safeguardx/safeguardx/internal/worker"
)

// ResponseEngine advances threats through the remediation lifecycle with
// asynchronous background tasks. Tasks are fire-and-forget: the request
// that schedules one never awaits its completion, and a task whose threat
// has vanished is a silent no-op.
type ResponseEngine struct {
	store     threat.Store
	pool      *worker.Pool
	mitigator Mitigator
	cfg       config.ResponseConfig
	logger    *logger.Logger
}

// NewResponseEngine creates a response engine.
func NewResponseEngine(store threat.Store, pool *worker.Pool, mitigator Mitigator, cfg config.ResponseConfig, log *logger.Logger) *ResponseEngine {
	return &ResponseEngine{
		store:     store,
		pool:      pool,
		mitigator: mitigator,
		cfg:       cfg,
		logger:    log,
	}
}

// Respond initiates an explicit incident response against an active
// threat: it moves the threat to responding, records the requested
// playbook, and schedules its execution. Returns NotFound for an unknown
// threat and InvalidState when the threat is not active.
func (e *ResponseEngine) Respond(threatID int64, action string) error {
	t, err := e.store.GetThreat(threatID)
	if err != nil {
		if errors.Is(err, threat.ErrThreatNotFound) {
			return apperrors.NotFound("Threat")
		}
		return apperrors.Internal("Failed to load threat", err)
	}

	if t.Status != threat.StatusActive {
		return apperrors.InvalidState("Threat is not active")
	}

	now := time.Now()
	err = e.store.UpdateStatus(threatID, threat.StatusResponding, func(t *threat.Threat) {
		t.ResponseInitiated = &now
		t.ResponseType = action
	})
	if err != nil {
		// Lost the race to another responder.
		return apperrors.InvalidState("Threat is not active")
	}

	e.logger.WithFields(map[string]interface{}{
		"threat_id": threatID,
		"action":    action,
	}).Info("Incident response initiated")

	e.pool.Submit(func(ctx context.Context) {
		e.runPlaybook(ctx, threatID, action)
	})

	return nil
}

// ScheduleAutoResponse schedules the automated mitigation task for a
// threat classified with immediate_action.
func (e *ResponseEngine) ScheduleAutoResponse(threatID int64) {
	e.pool.Submit(func(ctx context.Context) {
		e.runAutoResponse(ctx, threatID)
	})
}

// runAutoResponse is the automated path: after a processing delay the
// threat moves to mitigating, a category-specific mitigation step runs,
// and after a further delay the threat resolves.
func (e *ResponseEngine) runAutoResponse(ctx context.Context, threatID int64) {
	start := time.Now()

	time.Sleep(e.cfg.AutoResponseDelay)

	now := time.Now()
	err := e.store.UpdateStatus(threatID, threat.StatusMitigating, func(t *threat.Threat) {
		t.AutoResponseStarted = &now
	})
	if err != nil {
		// Threat vanished or was already resolved by a playbook;
		// nothing left to do and nobody to notify.
		e.logger.WithFields(map[string]interface{}{
			"threat_id": threatID,
		}).Debugf("Auto response skipped: %v", err)
		metrics.RecordResponseTask("auto", "skipped", time.Since(start))
		return
	}

	t, err := e.store.GetThreat(threatID)
	if err == nil {
		if action := e.mitigate(ctx, t); action != "" {
			_ = e.store.Apply(threatID, func(t *threat.Threat) {
				t.ResponseActions = append(t.ResponseActions, action)
			})
		}
	}

	time.Sleep(e.cfg.AutoResolveDelay)

	resolved := time.Now()
	err = e.store.UpdateStatus(threatID, threat.StatusResolved, func(t *threat.Threat) {
		t.ResolvedAt = &resolved
	})
	if err != nil {
		metrics.RecordResponseTask("auto", "skipped", time.Since(start))
		return
	}

	e.logger.WithFields(map[string]interface{}{
		"threat_id": threatID,
	}).Info("Automated response completed")
	metrics.RecordResponseTask("auto", "resolved", time.Since(start))
}

// mitigate dispatches the category-specific remediation step and returns
// the resulting action description, or "" when the category has none.
func (e *ResponseEngine) mitigate(ctx context.Context, t *threat.Threat) string {
	var (
		action string
		err    error
	)

	switch t.Category {
	case "DDoS", "Brute Force":
		action, err = e.mitigator.BlockIP(ctx, t)
	case "Malware", "APT":
		action, err = e.mitigator.IsolateHost(ctx, t)
	case "Phishing":
		action, err = e.mitigator.QuarantineEmail(ctx, t)
	default:
		return ""
	}

	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"threat_id": t.ID,
			"category":  t.Category,
		}).ErrorWithErr(err, "Mitigation step failed")
		return ""
	}
	return action
}

// runPlaybook executes an explicit response playbook: it records the
// playbook's action list, simulates execution time, and resolves the
// threat with a summary naming the playbook.
func (e *ResponseEngine) runPlaybook(ctx context.Context, threatID int64, actionType string) {
	start := time.Now()

	actions := threat.PlaybookActions(actionType)
	err := e.store.Apply(threatID, func(t *threat.Threat) {
		t.ResponseActions = actions
		t.PlaybookExecuted = actionType
	})
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"threat_id": threatID,
		}).Debugf("Playbook skipped: %v", err)
		metrics.RecordResponseTask("playbook", "skipped", time.Since(start))
		return
	}

	time.Sleep(e.cfg.PlaybookDelay)

	resolved := time.Now()
	err = e.store.UpdateStatus(threatID, threat.StatusResolved, func(t *threat.Threat) {
		t.ResolutionAt = &resolved
		t.ResolutionSummary = fmt.Sprintf("Threat resolved using %s playbook", actionType)
	})
	if err != nil {
		metrics.RecordResponseTask("playbook", "skipped", time.Since(start))
		return
	}

	e.logger.WithFields(map[string]interface{}{
		"threat_id": threatID,
		"playbook":  actionType,
	}).Info("Playbook execution completed")
	metrics.RecordResponseTask("playbook", "resolved", time.Since(start))
}
