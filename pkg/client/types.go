package client

import "time"

// Threat represents a detected security threat and its response lifecycle
type Threat struct {
	ID          int64     `json:"id"`
	LogID       int64     `json:"log_id"`
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	Severity    string    `json:"severity"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
	Status      string    `json:"status"`
	RiskLevel   int       `json:"risk_level"`
	Description string    `json:"description"`

	ResponseInitiated   *time.Time `json:"response_initiated,omitempty"`
	ResponseType        string     `json:"response_type,omitempty"`
	AutoResponseStarted *time.Time `json:"auto_response_started,omitempty"`
	ResponseActions     []string   `json:"response_actions,omitempty"`
	PlaybookExecuted    string     `json:"playbook_executed,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_timestamp,omitempty"`
	ResolutionAt        *time.Time `json:"resolution_timestamp,omitempty"`
	ResolutionSummary   string     `json:"resolution_summary,omitempty"`
}

// Alert represents a notification raised for a detected threat
type Alert struct {
	ID              int64      `json:"id"`
	ThreatID        int64      `json:"threat_id"`
	Severity        string     `json:"severity"`
	Message         string     `json:"message"`
	Timestamp       time.Time  `json:"timestamp"`
	Read            bool       `json:"read"`
	ReadAt          *time.Time `json:"read_timestamp,omitempty"`
	ActionsRequired bool       `json:"actions_required"`
}

// AnalyzeRequest is a log event submitted for analysis
type AnalyzeRequest struct {
	Source   string                 `json:"source"`
	Level    string                 `json:"level"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// AnalyzeResponse is the analysis outcome for a single log event
type AnalyzeResponse struct {
	LogID          int64   `json:"log_id"`
	AnomalyScore   float64 `json:"anomaly_score"`
	Status         string  `json:"status"`
	ThreatDetected bool    `json:"threat_detected,omitempty"`
	Threat         *Threat `json:"threat,omitempty"`
	Alert          *Alert  `json:"alert,omitempty"`
}

// ActiveThreatsResponse lists currently active threats
type ActiveThreatsResponse struct {
	Threats []*Threat `json:"threats"`
	Count   int       `json:"count"`
}

// ThreatHistoryResponse lists recent threats
type ThreatHistoryResponse struct {
	Threats []*Threat `json:"threats"`
	Total   int       `json:"total"`
}

// RespondResponse confirms that incident response was initiated
type RespondResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseType string `json:"response_type"`
}

// AlertsResponse lists alerts with the unread count
type AlertsResponse struct {
	Alerts      []*Alert `json:"alerts"`
	UnreadCount int      `json:"unread_count"`
}

// StatusResponse is a generic status acknowledgement
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ThreatLevels breaks down active threats by severity
type ThreatLevels struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// DashboardMetrics is the aggregate dashboard snapshot
type DashboardMetrics struct {
	ActiveThreats     int          `json:"active_threats"`
	TotalThreatsToday int          `json:"total_threats_today"`
	UnreadAlerts      int          `json:"unread_alerts"`
	ThreatLevels      ThreatLevels `json:"threat_levels"`
	SystemStatus      string       `json:"system_status"`
	LastUpdated       time.Time    `json:"last_updated"`
}

// AnalysisSummary describes the static analysis of a scanned file
type AnalysisSummary struct {
	SignaturesMatched  []string `json:"signatures_matched"`
	SuspiciousPatterns []string `json:"suspicious_patterns"`
	FileType           string   `json:"file_type"`
	Entropy            float64  `json:"entropy"`
	APICalls           []string `json:"api_calls"`
	NetworkConnections []string `json:"network_connections"`
}

// ScanResult is the verdict for a scanned file
type ScanResult struct {
	FileName        string          `json:"file_name"`
	FileHash        string          `json:"file_hash"`
	FileSize        int64           `json:"file_size"`
	ScanStatus      string          `json:"scan_status"`
	ThreatLevel     string          `json:"threat_level"`
	MalwareDetected bool            `json:"malware_detected"`
	AnalysisSummary AnalysisSummary `json:"analysis_summary"`
}

// HashLookup reports whether a file hash is known malware
type HashLookup struct {
	Hash         string  `json:"hash"`
	KnownMalware bool    `json:"known_malware"`
	FirstSeen    *string `json:"first_seen"`
	Detections   int     `json:"detections"`
	Reputation   string  `json:"reputation"`
}

// ScanStats is the scanner statistics payload
type ScanStats struct {
	TotalScans       int64     `json:"total_scans"`
	MalwareDetected  int64     `json:"malware_detected"`
	CleanFiles       int64     `json:"clean_files"`
	QuarantinedFiles int64     `json:"quarantined_files"`
	SystemUptime     string    `json:"system_uptime"`
	LastUpdate       time.Time `json:"last_update"`
}

// ScanConfig is the scanner protection configuration
type ScanConfig struct {
	RealTimeProtection bool  `json:"real_time_protection"`
	AutoQuarantine     bool  `json:"auto_quarantine"`
	ScanArchives       bool  `json:"scan_archives"`
	CloudLookup        bool  `json:"cloud_lookup"`
	MaxFileSizeMB      int64 `json:"max_file_size_mb"`
}

// HealthStatus reports service liveness
type HealthStatus struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}
