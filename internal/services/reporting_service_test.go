package services

import (
	"testing"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
	"github.com/safeguardx/safeguardx/internal/repository/memory"
	"github.com/safeguardx/safeguardx/internal/testutil"
)

func TestDashboardEmptyStore(t *testing.T) {
	svc := NewReportingService(memory.NewThreatStore())

	m := svc.Dashboard()
	if m.ActiveThreats != 0 || m.TotalThreatsToday != 0 || m.UnreadAlerts != 0 {
		t.Errorf("empty store metrics = %+v", m)
	}
	if m.SystemStatus != "operational" {
		t.Errorf("SystemStatus = %q, want operational", m.SystemStatus)
	}
	if m.LastUpdated.IsZero() {
		t.Error("LastUpdated not set")
	}
}

func TestDashboardAggregation(t *testing.T) {
	store := memory.NewThreatStore()
	svc := NewReportingService(store)

	testutil.SeedThreat(t, store, threat.SeverityCritical, "APT")
	testutil.SeedThreat(t, store, threat.SeverityHigh, "DDoS")
	testutil.SeedThreat(t, store, threat.SeverityHigh, "Malware")
	medium := testutil.SeedThreat(t, store, threat.SeverityMedium, "Phishing")

	// Resolving a threat removes it from the active breakdown but not
	// from today's total.
	if err := store.UpdateStatus(medium.ID, threat.StatusResolved, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	m := svc.Dashboard()

	if m.ActiveThreats != 3 {
		t.Errorf("ActiveThreats = %d, want 3", m.ActiveThreats)
	}
	if m.TotalThreatsToday != 4 {
		t.Errorf("TotalThreatsToday = %d, want 4", m.TotalThreatsToday)
	}
	if m.ThreatLevels.Critical != 1 || m.ThreatLevels.High != 2 || m.ThreatLevels.Medium != 0 || m.ThreatLevels.Low != 0 {
		t.Errorf("ThreatLevels = %+v", m.ThreatLevels)
	}

	levelSum := m.ThreatLevels.Critical + m.ThreatLevels.High + m.ThreatLevels.Medium + m.ThreatLevels.Low
	if levelSum != m.ActiveThreats {
		t.Errorf("level sum %d != ActiveThreats %d", levelSum, m.ActiveThreats)
	}

	if m.UnreadAlerts != 4 {
		t.Errorf("UnreadAlerts = %d, want 4", m.UnreadAlerts)
	}
}

func TestDashboardUnreadCountTracksReads(t *testing.T) {
	store := memory.NewThreatStore()
	svc := NewReportingService(store)

	testutil.SeedThreat(t, store, threat.SeverityHigh, "DDoS")
	testutil.SeedThreat(t, store, threat.SeverityHigh, "Malware")

	alerts, _ := store.ListAlerts(false)
	if err := store.MarkAlertRead(alerts[0].ID); err != nil {
		t.Fatalf("MarkAlertRead: %v", err)
	}

	if m := svc.Dashboard(); m.UnreadAlerts != 1 {
		t.Errorf("UnreadAlerts = %d, want 1", m.UnreadAlerts)
	}
}
