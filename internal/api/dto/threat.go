package dto

import "github.com/safeguardx/safeguardx/internal/domain/threat"

// AnalyzeRequest is a log event submitted for analysis.
type AnalyzeRequest struct {
	Source   string                 `json:"source" validate:"required"`
	Level    string                 `json:"level" validate:"required"`
	Message  string                 `json:"message" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ToEvent converts the request to the domain log event.
func (r AnalyzeRequest) ToEvent() threat.LogEvent {
	return threat.LogEvent{
		Source:   r.Source,
		Level:    r.Level,
		Message:  r.Message,
		Metadata: r.Metadata,
	}
}

// AnalyzeResponse is the analysis outcome. Threat and Alert are present
// only when the score crossed the detection threshold.
type AnalyzeResponse struct {
	LogID          int64          `json:"log_id"`
	AnomalyScore   float64        `json:"anomaly_score"`
	Status         string         `json:"status"`
	ThreatDetected bool           `json:"threat_detected,omitempty"`
	Threat         *threat.Threat `json:"threat,omitempty"`
	Alert          *threat.Alert  `json:"alert,omitempty"`
}

// RespondRequest selects the response playbook for a threat. Unknown
// actions fall back to the default playbook.
type RespondRequest struct {
	Action string `json:"action"`
}

// RespondResponse acknowledges a scheduled incident response.
type RespondResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseType string `json:"response_type"`
}

// ActiveThreatsResponse lists currently active threats.
type ActiveThreatsResponse struct {
	Threats []*threat.Threat `json:"threats"`
	Count   int              `json:"count"`
}

// ThreatHistoryResponse lists recent threats with the total history size.
type ThreatHistoryResponse struct {
	Threats []*threat.Threat `json:"threats"`
	Total   int              `json:"total"`
}

// AlertsResponse lists alerts with the unread count.
type AlertsResponse struct {
	Alerts      []*threat.Alert `json:"alerts"`
	UnreadCount int             `json:"unread_count"`
}

// StatusResponse is a minimal status acknowledgement.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
