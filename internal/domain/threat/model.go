package threat

import (
	"errors"
	"fmt"
	"time"
)

// LogEvent is a raw log line submitted for analysis. Input-only; the
// analysis pipeline never mutates it.
type LogEvent struct {
	Source   string                 `json:"source"`
	Level    string                 `json:"level"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Status is a threat lifecycle state. Transitions only move forward:
// active -> responding -> mitigating -> resolved, where the automatic
// response path may skip "responding".
type Status string

const (
	StatusActive     Status = "active"
	StatusResponding Status = "responding"
	StatusMitigating Status = "mitigating"
	StatusResolved   Status = "resolved"
)

var statusRank = map[Status]int{
	StatusActive:     0,
	StatusResponding: 1,
	StatusMitigating: 2,
	StatusResolved:   3,
}

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether s is the terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusResolved
}

// CanTransition reports whether moving from s to next keeps the lifecycle
// monotonic: never backward, never out of resolved. Re-asserting the
// current state is allowed so racing terminal writers both succeed (last
// writer wins on terminal fields).
func (s Status) CanTransition(next Status) bool {
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt >= cur
}

// Sentinel errors returned by Store implementations.
var (
	ErrThreatNotFound    = errors.New("threat not found")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Classification is the transient output of the detector, consumed once
// at threat-creation time.
type Classification struct {
	Severity        string `json:"severity"`
	Category        string `json:"category"`
	RiskLevel       int    `json:"risk_level"`
	ImmediateAction bool   `json:"immediate_action"`
}

// Threat is a detected security threat and its response lifecycle.
type Threat struct {
	ID          int64     `json:"id"`
	LogID       int64     `json:"log_id"`
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	Severity    string    `json:"severity"`
	Category    string    `json:"category"`
	Confidence  float64   `json:"confidence"`
	Status      Status    `json:"status"`
	RiskLevel   int       `json:"risk_level"`
	Description string    `json:"description"`

	// Response metadata, populated as the lifecycle advances.
	ResponseInitiated   *time.Time `json:"response_initiated,omitempty"`
	ResponseType        string     `json:"response_type,omitempty"`
	AutoResponseStarted *time.Time `json:"auto_response_started,omitempty"`
	ResponseActions     []string   `json:"response_actions,omitempty"`
	PlaybookExecuted    string     `json:"playbook_executed,omitempty"`
	ResolvedAt          *time.Time `json:"resolved_timestamp,omitempty"`
	ResolutionAt        *time.Time `json:"resolution_timestamp,omitempty"`
	ResolutionSummary   string     `json:"resolution_summary,omitempty"`
}

// Clone returns a deep copy safe to hand out of the store.
func (t *Threat) Clone() *Threat {
	c := *t
	if t.ResponseActions != nil {
		c.ResponseActions = append([]string(nil), t.ResponseActions...)
	}
	return &c
}

// Alert is a notification raised for a detected threat. It references its
// threat by ID only.
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

// Clone returns a copy safe to hand out of the store.
func (a *Alert) Clone() *Alert {
	c := *a
	return &c
}

// Describe builds the derived threat description.
func Describe(category, source string) string {
	return fmt.Sprintf("%s detected from %s", category, source)
}

// AlertMessage builds the derived alert message.
func AlertMessage(category, source string) string {
	return fmt.Sprintf("🚨 %s detected from %s", category, source)
}

// Playbook action types
const (
	PlaybookAutoMitigate = "auto_mitigate"
	PlaybookInvestigate  = "investigate"
	PlaybookContain      = "contain"
)

var playbookActions = map[string][]string{
	PlaybookAutoMitigate: {"Block suspicious IP", "Isolate affected system", "Notify security team"},
	PlaybookInvestigate:  {"Collect forensic data", "Analyze threat vectors", "Generate report"},
	PlaybookContain:      {"Network segmentation", "Access restrictions", "Monitor communications"},
}

// PlaybookActions returns the ordered action list for a playbook type.
// Unknown types get the default single-action playbook.
func PlaybookActions(actionType string) []string {
	if actions, ok := playbookActions[actionType]; ok {
		return append([]string(nil), actions...)
	}
	return []string{"Default response"}
}
