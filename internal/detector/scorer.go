package detector

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/safeguardx/safeguardx/internal/domain/threat"
)

// Rand is the source of randomness used for score perturbation and
// category selection. Injectable so tests can substitute a fixed sequence.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// lockedRand makes a math/rand source safe for concurrent scoring.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// NewRand returns a concurrency-safe Rand seeded from the given seed.
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

// riskPatterns is the fixed keyword vocabulary; each distinct match adds
// to the anomaly score regardless of how often it repeats.
var riskPatterns = []string{
	"failed login",
	"brute force",
	"sql injection",
	"malware",
	"ddos",
	"port scan",
	"privilege escalation",
	"data exfiltration",
}

// levelScores maps log levels to their score increment. Unknown levels
// score like INFO.
var levelScores = map[string]float64{
	"CRITICAL": 0.4,
	"ERROR":    0.3,
	"WARN":     0.2,
	"INFO":     0.1,
}

const (
	baseScore      = 0.1
	patternScore   = 0.3
	noiseMax       = 0.2
	defaultLevelUp = 0.1
)

// Scorer computes heuristic anomaly scores for log events and classifies
// above-threshold events into threat severity tiers.
type Scorer struct {
	rng Rand
}

// NewScorer creates a scorer using the given random source.
func NewScorer(rng Rand) *Scorer {
	return &Scorer{rng: rng}
}

// NewDefaultScorer creates a scorer with a time-seeded random source.
func NewDefaultScorer() *Scorer {
	return NewScorer(NewRand(time.Now().UnixNano()))
}

// Score computes the anomaly score for a log event, in [0, 1]. The score
// accumulates a base value, one increment per distinct risk keyword found
// in the message, a level increment, and bounded random noise emulating
// model uncertainty.
func (s *Scorer) Score(event threat.LogEvent) float64 {
	score := baseScore

	message := strings.ToLower(event.Message)
	for _, pattern := range riskPatterns {
		if strings.Contains(message, pattern) {
			score += patternScore
		}
	}

	if inc, ok := levelScores[event.Level]; ok {
		score += inc
	} else {
		score += defaultLevelUp
	}

	score += s.rng.Float64() * noiseMax

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// categoriesBySeverity are the fixed category vocabularies per tier.
var (
	criticalCategories = []string{"APT", "Zero-day", "Data Breach"}
	highCategories     = []string{"DDoS", "Malware", "Brute Force"}
	mediumCategories   = []string{"Phishing", "Policy Violation"}
)

// Classify maps an anomaly score to a severity classification. Category
// choice within a tier is uniformly random.
func (s *Scorer) Classify(score float64, source string) threat.Classification {
	switch {
	case score > 0.9:
		return threat.Classification{
			Severity:        threat.SeverityCritical,
			Category:        s.choose(criticalCategories),
			RiskLevel:       5,
			ImmediateAction: true,
		}
	case score > 0.7:
		return threat.Classification{
			Severity:        threat.SeverityHigh,
			Category:        s.choose(highCategories),
			RiskLevel:       4,
			ImmediateAction: true,
		}
	case score > 0.5:
		return threat.Classification{
			Severity:        threat.SeverityMedium,
			Category:        s.choose(mediumCategories),
			RiskLevel:       3,
			ImmediateAction: false,
		}
	default:
		return threat.Classification{
			Severity:        threat.SeverityLow,
			Category:        "Informational",
			RiskLevel:       1,
			ImmediateAction: false,
		}
	}
}

func (s *Scorer) choose(categories []string) string {
	return categories[s.rng.Intn(len(categories))]
}
