package worker

import (
	"github.com/robfig/cron/v3"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/pkg/metrics"
)

// MetricsRefresher periodically pushes store-derived gauges (active
// threats by severity, unread alerts) to Prometheus so /metrics stays
// current without dashboard traffic.
type MetricsRefresher struct {
	store     threat.Store
	schedule  string
	scheduler *cron.Cron
	logger    *logger.Logger
}

// NewMetricsRefresher creates a refresher with a cron schedule
// (e.g. "@every 30s").
func NewMetricsRefresher(store threat.Store, schedule string, log *logger.Logger) *MetricsRefresher {
	return &MetricsRefresher{
		store:    store,
		schedule: schedule,
		logger:   log,
	}
}

// Start begins the refresh schedule. Returns an error for an invalid
// cron spec.
func (r *MetricsRefresher) Start() error {
	r.scheduler = cron.New()
	if _, err := r.scheduler.AddFunc(r.schedule, r.Refresh); err != nil {
		return err
	}

	// Prime the gauges before the first tick.
	r.Refresh()
	r.scheduler.Start()

	r.logger.WithFields(map[string]interface{}{
		"schedule": r.schedule,
	}).Info("Metrics refresher started")
	return nil
}

// Stop halts the refresh schedule.
func (r *MetricsRefresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}

// Refresh recomputes the gauges from current store state.
func (r *MetricsRefresher) Refresh() {
	counts := map[string]int{
		threat.SeverityCritical: 0,
		threat.SeverityHigh:     0,
		threat.SeverityMedium:   0,
		threat.SeverityLow:      0,
	}
	for _, t := range r.store.ListActive() {
		counts[t.Severity]++
	}
	for severity, count := range counts {
		metrics.SetActiveThreats(severity, float64(count))
	}

	_, unread := r.store.ListAlerts(false)
	metrics.SetUnreadAlerts(float64(unread))
}
