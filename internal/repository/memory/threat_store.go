package memory

import (
	"math"
	"sync"
	"time"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
)

// ThreatStore is an in-memory threat.Store. A single mutex serializes all
// mutation; identifiers are monotonic from 1 per namespace and never
// reused. State lives for the process lifetime only.
type ThreatStore struct {
	mu sync.Mutex

	logSeq    int64
	threatSeq int64
	alertSeq  int64

	threats     map[int64]*threat.Threat
	threatOrder []int64
	alerts      map[int64]*threat.Alert
	alertOrder  []int64
}

// NewThreatStore creates an empty store.
func NewThreatStore() *ThreatStore {
	return &ThreatStore{
		threats: make(map[int64]*threat.Threat),
		alerts:  make(map[int64]*threat.Alert),
	}
}

// NextLogID allocates the next monotonic log record identifier.
func (s *ThreatStore) NextLogID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logSeq++
	return s.logSeq
}

// CreateThreat materializes a threat in status active.
func (s *ThreatStore) CreateThreat(logID int64, source string, c threat.Classification, score float64) *threat.Threat {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threatSeq++
	t := &threat.Threat{
		ID:          s.threatSeq,
		LogID:       logID,
		Timestamp:   time.Now(),
		Source:      source,
		Severity:    c.Severity,
		Category:    c.Category,
		Confidence:  math.Round(score*100*100) / 100,
		Status:      threat.StatusActive,
		RiskLevel:   c.RiskLevel,
		Description: threat.Describe(c.Category, source),
	}

	s.threats[t.ID] = t
	s.threatOrder = append(s.threatOrder, t.ID)

	return t.Clone()
}

// CreateAlert raises an alert for an existing threat. ActionsRequired
// mirrors the classifier's immediate-action flag, which is set exactly
// for the critical and high severity tiers.
func (s *ThreatStore) CreateAlert(t *threat.Threat) *threat.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alertSeq++
	a := &threat.Alert{
		ID:              s.alertSeq,
		ThreatID:        t.ID,
		Severity:        t.Severity,
		Message:         threat.AlertMessage(t.Category, t.Source),
		Timestamp:       time.Now(),
		Read:            false,
		ActionsRequired: t.Severity == threat.SeverityCritical || t.Severity == threat.SeverityHigh,
	}

	s.alerts[a.ID] = a
	s.alertOrder = append(s.alertOrder, a.ID)

	return a.Clone()
}

// GetThreat retrieves a threat by ID.
func (s *ThreatStore) GetThreat(id int64) (*threat.Threat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threats[id]
	if !ok {
		return nil, threat.ErrThreatNotFound
	}
	return t.Clone(), nil
}

// ListActive returns threats whose status is active, in insertion order.
func (s *ThreatStore) ListActive() []*threat.Threat {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]*threat.Threat, 0)
	for _, id := range s.threatOrder {
		if t := s.threats[id]; t.Status == threat.StatusActive {
			active = append(active, t.Clone())
		}
	}
	return active
}

// ListHistory returns up to limit most recent threats in insertion order,
// plus the total history size. A non-positive or oversized limit returns
// the full history.
func (s *ThreatStore) ListHistory(limit int) ([]*threat.Threat, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.threatOrder)
	start := 0
	if limit > 0 && limit < total {
		start = total - limit
	}

	history := make([]*threat.Threat, 0, total-start)
	for _, id := range s.threatOrder[start:] {
		history = append(history, s.threats[id].Clone())
	}
	return history, total
}

// ListAlerts returns alerts in insertion order plus the unread count.
func (s *ThreatStore) ListAlerts(unreadOnly bool) ([]*threat.Alert, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts := make([]*threat.Alert, 0, len(s.alertOrder))
	unread := 0
	for _, id := range s.alertOrder {
		a := s.alerts[id]
		if !a.Read {
			unread++
		}
		if unreadOnly && a.Read {
			continue
		}
		alerts = append(alerts, a.Clone())
	}
	return alerts, unread
}

// MarkAlertRead marks an alert as read. Re-marking a read alert succeeds
// and keeps the original read timestamp.
func (s *ThreatStore) MarkAlertRead(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return threat.ErrAlertNotFound
	}
	if !a.Read {
		now := time.Now()
		a.Read = true
		a.ReadAt = &now
	}
	return nil
}

// UpdateStatus transitions a threat and applies extra field writes under
// the store lock. Backward transitions return ErrInvalidTransition; a
// resolved threat only accepts further resolved writes, so racing
// resolvers both succeed and the last writer wins on terminal fields.
func (s *ThreatStore) UpdateStatus(id int64, status threat.Status, apply func(*threat.Threat)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threats[id]
	if !ok {
		return threat.ErrThreatNotFound
	}
	if !t.Status.CanTransition(status) {
		return threat.ErrInvalidTransition
	}

	t.Status = status
	if apply != nil {
		apply(t)
	}
	return nil
}

// Apply performs field writes on a threat without a status transition.
func (s *ThreatStore) Apply(id int64, apply func(*threat.Threat)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.threats[id]
	if !ok {
		return threat.ErrThreatNotFound
	}
	apply(t)
	return nil
}
