package services

import (
	"context"
	"time"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
)

// Mitigator abstracts the external mitigation systems contacted during
// automated response. The default implementation simulates each call with
// a fixed wait; a production deployment substitutes real integrations
// behind the same interface.
type Mitigator interface {
	// BlockIP blocks the offending address at the firewall.
	BlockIP(ctx context.Context, t *threat.Threat) (string, error)

	// IsolateHost cuts the affected system off the network.
	IsolateHost(ctx context.Context, t *threat.Threat) (string, error)

	// QuarantineEmail quarantines the malicious message.
	QuarantineEmail(ctx context.Context, t *threat.Threat) (string, error)
}

// SimulatedMitigator fakes mitigation calls with a fixed delay.
type SimulatedMitigator struct {
	Delay time.Duration
}

// NewSimulatedMitigator creates a simulated mitigator with the given
// per-step delay.
func NewSimulatedMitigator(delay time.Duration) *SimulatedMitigator {
	return &SimulatedMitigator{Delay: delay}
}

func (m *SimulatedMitigator) BlockIP(ctx context.Context, t *threat.Threat) (string, error) {
	time.Sleep(m.Delay)
	return "IP address blocked at firewall", nil
}

func (m *SimulatedMitigator) IsolateHost(ctx context.Context, t *threat.Threat) (string, error) {
	time.Sleep(m.Delay)
	return "System isolated from network", nil
}

func (m *SimulatedMitigator) QuarantineEmail(ctx context.Context, t *threat.Threat) (string, error) {
	time.Sleep(m.Delay)
	return "Malicious email quarantined", nil
}
