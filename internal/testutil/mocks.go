package testutil

import (
	"context"
	"sync"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
)

// FixedRand is a deterministic random source for the scorer. Float64
// values are consumed from Floats in order, cycling when exhausted.
type FixedRand struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

func (r *FixedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Floats) == 0 {
		return 0
	}
	v := r.Floats[r.fi%len(r.Floats)]
	r.fi++
	return v
}

func (r *FixedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[r.ii%len(r.Ints)] % n
	r.ii++
	return v
}

// MockMitigator records mitigation calls instead of sleeping.
type MockMitigator struct {
	mu         sync.Mutex
	BlockedIPs []int64
	Isolated   []int64
	Quarantine []int64
	Err        error
}

func (m *MockMitigator) BlockIP(ctx context.Context, t *threat.Threat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.BlockedIPs = append(m.BlockedIPs, t.ID)
	return "IP address blocked at firewall", nil
}

func (m *MockMitigator) IsolateHost(ctx context.Context, t *threat.Threat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Isolated = append(m.Isolated, t.ID)
	return "System isolated from network", nil
}

func (m *MockMitigator) QuarantineEmail(ctx context.Context, t *threat.Threat) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Quarantine = append(m.Quarantine, t.ID)
	return "Malicious email quarantined", nil
}

// Calls returns the total number of mitigation calls recorded.
func (m *MockMitigator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.BlockedIPs) + len(m.Isolated) + len(m.Quarantine)
}
