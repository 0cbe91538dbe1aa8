package services

import (
	"time"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
)

// ThreatLevels is the active-threat breakdown by severity.
type ThreatLevels struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// DashboardMetrics is the aggregate snapshot served to the dashboard.
type DashboardMetrics struct {
	ActiveThreats     int          `json:"active_threats"`
	TotalThreatsToday int          `json:"total_threats_today"`
	UnreadAlerts      int          `json:"unread_alerts"`
	ThreatLevels      ThreatLevels `json:"threat_levels"`
	SystemStatus      string       `json:"system_status"`
	LastUpdated       time.Time    `json:"last_updated"`
}

// ReportingService is the read-only aggregation surface over the threat
// store. Every call scans current store state; nothing is cached.
type ReportingService struct {
	store threat.Store
}

// NewReportingService creates a reporting service.
func NewReportingService(store threat.Store) *ReportingService {
	return &ReportingService{store: store}
}

// Dashboard computes the dashboard snapshot from current store state.
func (s *ReportingService) Dashboard() *DashboardMetrics {
	now := time.Now()

	active := s.store.ListActive()
	levels := ThreatLevels{}
	for _, t := range active {
		switch t.Severity {
		case threat.SeverityCritical:
			levels.Critical++
		case threat.SeverityHigh:
			levels.High++
		case threat.SeverityMedium:
			levels.Medium++
		case threat.SeverityLow:
			levels.Low++
		}
	}

	history, _ := s.store.ListHistory(0)
	today := 0
	y, m, d := now.Date()
	for _, t := range history {
		ty, tm, td := t.Timestamp.Date()
		if ty == y && tm == m && td == d {
			today++
		}
	}

	_, unread := s.store.ListAlerts(false)

	return &DashboardMetrics{
		ActiveThreats:     len(active),
		TotalThreatsToday: today,
		UnreadAlerts:      unread,
		ThreatLevels:      levels,
		SystemStatus:      "operational",
		LastUpdated:       now,
	}
}
