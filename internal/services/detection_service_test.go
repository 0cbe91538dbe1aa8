package services

import (
	"testing"
	"time"

	"github.com/safeguardx/safeguardx/internal/detector"
	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/repository/memory"
	"github.com/safeguardx/safeguardx/internal/testutil"
	"github.com/safeguardx/safeguardx/internal/worker"
)

func newTestDetection(t *testing.T, rng detector.Rand) (*DetectionService, *memory.ThreatStore) {
	t.Helper()

	log := testutil.NewTestLogger()
	store := memory.NewThreatStore()
	pool := worker.NewPool(2, log)
	t.Cleanup(func() { _ = pool.StopWithTimeout(time.Second) })

	engine := NewResponseEngine(store, pool, &testutil.MockMitigator{}, fastResponseConfig(), log)
	return NewDetectionService(detector.NewScorer(rng), store, engine, 0.6, log), store
}

func TestAnalyzeBelowThreshold(t *testing.T) {
	svc, store := newTestDetection(t, &testutil.FixedRand{Floats: []float64{0}})

	result := svc.Analyze(threat.LogEvent{
		Source:  "web-01",
		Level:   "INFO",
		Message: "user session refreshed",
	})

	if result.LogID != 1 {
		t.Errorf("LogID = %d, want 1", result.LogID)
	}
	if result.Detected() {
		t.Errorf("Detected() = true for score %v", result.Score)
	}
	if result.Threat != nil || result.Alert != nil {
		t.Error("threat or alert materialized below threshold")
	}
	if active := store.ListActive(); len(active) != 0 {
		t.Errorf("store has %d active threats, want 0", len(active))
	}
}

func TestAnalyzeAtThresholdNotDetected(t *testing.T) {
	// 0.1 base + 0.3 keyword + 0.2 WARN = 0.6, not strictly above 0.6.
	svc, _ := newTestDetection(t, &testutil.FixedRand{Floats: []float64{0}})

	result := svc.Analyze(threat.LogEvent{
		Source:  "auth-01",
		Level:   "WARN",
		Message: "failed login for user bob",
	})

	if result.Detected() {
		t.Errorf("Detected() = true for score %v at threshold", result.Score)
	}
}

func TestAnalyzeDetectsThreat(t *testing.T) {
	// 0.1 base + 0.3 keyword + 0.3 ERROR = 0.7: medium tier, no auto response.
	svc, store := newTestDetection(t, &testutil.FixedRand{Floats: []float64{0}, Ints: []int{0}})

	result := svc.Analyze(threat.LogEvent{
		Source:  "auth-01",
		Level:   "ERROR",
		Message: "failed login burst from 10.1.2.3",
	})

	if !result.Detected() {
		t.Fatalf("Detected() = false for score %v", result.Score)
	}
	if result.Threat.Severity != threat.SeverityMedium {
		t.Errorf("Severity = %q, want medium", result.Threat.Severity)
	}
	if result.Threat.LogID != result.LogID {
		t.Errorf("threat LogID = %d, result LogID = %d", result.Threat.LogID, result.LogID)
	}
	if result.Alert.ThreatID != result.Threat.ID {
		t.Errorf("alert ThreatID = %d, want %d", result.Alert.ThreatID, result.Threat.ID)
	}
	if result.Alert.ActionsRequired {
		t.Error("medium severity alert requires action")
	}

	// Medium severity never schedules the automated response.
	time.Sleep(20 * time.Millisecond)
	got, _ := store.GetThreat(result.Threat.ID)
	if got.Status != threat.StatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
}

func TestAnalyzeImmediateActionSchedulesAutoResponse(t *testing.T) {
	// 0.1 base + 0.6 keywords + 0.4 CRITICAL clamps to 1.0: critical tier.
	svc, store := newTestDetection(t, &testutil.FixedRand{Floats: []float64{0}, Ints: []int{0}})

	result := svc.Analyze(threat.LogEvent{
		Source:  "core-01",
		Level:   "CRITICAL",
		Message: "malware dropper initiating data exfiltration",
	})

	if !result.Detected() {
		t.Fatalf("Detected() = false for score %v", result.Score)
	}
	if result.Threat.Severity != threat.SeverityCritical {
		t.Errorf("Severity = %q, want critical", result.Threat.Severity)
	}
	if !result.Alert.ActionsRequired {
		t.Error("critical alert does not require action")
	}

	resolved := testutil.WaitFor(t, time.Second, func() bool {
		got, _ := store.GetThreat(result.Threat.ID)
		return got != nil && got.Status == threat.StatusResolved
	})
	if !resolved {
		t.Fatal("auto response never resolved the threat")
	}
}

func TestAnalyzeLogIDAdvancesWithoutDetection(t *testing.T) {
	svc, _ := newTestDetection(t, &testutil.FixedRand{Floats: []float64{0}})

	clean := threat.LogEvent{Source: "web-01", Level: "INFO", Message: "ok"}
	first := svc.Analyze(clean)
	second := svc.Analyze(clean)

	if second.LogID != first.LogID+1 {
		t.Errorf("LogIDs = %d, %d; want consecutive", first.LogID, second.LogID)
	}
}
