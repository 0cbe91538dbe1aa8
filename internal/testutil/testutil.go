package testutil

import (
	"testing"
	"time"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/pkg/logger"
	"github.com/safeguardx/safeguardx/internal/repository/memory"
)

// NewTestLogger returns a logger that only emits at error level, keeping
// test output quiet.
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// NewTestStore creates an empty in-memory threat store.
func NewTestStore(t *testing.T) *memory.ThreatStore {
	t.Helper()
	return memory.NewThreatStore()
}

// SeedThreat creates a threat (and its alert) in the store with the given
// severity and returns the threat.
func SeedThreat(t *testing.T, store *memory.ThreatStore, severity, category string) *threat.Threat {
	t.Helper()

	c := threat.Classification{
		Severity:        severity,
		Category:        category,
		RiskLevel:       riskLevelFor(severity),
		ImmediateAction: severity == threat.SeverityCritical || severity == threat.SeverityHigh,
	}

	th := store.CreateThreat(store.NextLogID(), "test-source", c, 0.85)
	store.CreateAlert(th)
	return th
}

func riskLevelFor(severity string) int {
	switch severity {
	case threat.SeverityCritical:
		return 5
	case threat.SeverityHigh:
		return 4
	case threat.SeverityMedium:
		return 3
	default:
		return 1
	}
}

// WaitFor polls cond until it returns true or the timeout expires.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
