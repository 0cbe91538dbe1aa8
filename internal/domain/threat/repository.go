package threat

// Store defines the interface for threat and alert state. Implementations
// must serialize all mutation so identifier assignment and status
// transitions never race, and must return copies from read methods.
type Store interface {
	// NextLogID allocates the next monotonic log record identifier.
	NextLogID() int64

	// CreateThreat materializes a threat from a classification and returns it.
	CreateThreat(logID int64, source string, c Classification, score float64) *Threat

	// CreateAlert raises an alert for an existing threat.
	CreateAlert(t *Threat) *Alert

	// GetThreat retrieves a threat by ID.
	GetThreat(id int64) (*Threat, error)

	// ListActive returns threats whose status is active.
	ListActive() []*Threat

	// ListHistory returns up to limit most recent threats in insertion
	// order, plus the total history size.
	ListHistory(limit int) ([]*Threat, int)

	// ListAlerts returns alerts (optionally unread only) plus the unread count.
	ListAlerts(unreadOnly bool) ([]*Alert, int)

	// MarkAlertRead marks an alert as read. Idempotent.
	MarkAlertRead(id int64) error

	// UpdateStatus transitions a threat to status and applies extra field
	// writes under the same lock. Backward transitions are rejected.
	UpdateStatus(id int64, status Status, apply func(*Threat)) error

	// Apply performs field writes on a threat without a status
	// transition, under the same lock.
	Apply(id int64, apply func(*Threat)) error
}
