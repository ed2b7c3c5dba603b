package ledger

import "fmt"

// Health is the five-tier financial classification. Bankrupt always wins
// over the net-worth bands.
type Health string

const (
	HealthExcellent  Health = "excellent"
	HealthGood       Health = "good"
	HealthAcceptable Health = "acceptable"
	HealthCritical   Health = "critical"
	HealthBankrupt   Health = "bankrupt"
)

// HealthBands holds the tunable breakpoints for the non-bankrupt tiers,
// expressed as ratios of current net worth to initial capital. Anything
// below Acceptable classifies as critical.
type HealthBands struct {
	Excellent  float64 `json:"excellent" yaml:"excellent"`
	Good       float64 `json:"good" yaml:"good"`
	Acceptable float64 `json:"acceptable" yaml:"acceptable"`
}

func DefaultHealthBands() HealthBands {
	return HealthBands{
		Excellent:  1.5,
		Good:       1.0,
		Acceptable: 0.5,
	}
}

// Validate enforces strictly descending breakpoints, which is what makes
// the classification monotonic in net worth.
func (b HealthBands) Validate() error {
	if !(b.Excellent > b.Good && b.Good > b.Acceptable) {
		return fmt.Errorf("health bands must be strictly descending: excellent %.2f, good %.2f, acceptable %.2f",
			b.Excellent, b.Good, b.Acceptable)
	}
	return nil
}

// Classify maps a net worth to a tier relative to initial capital. It never
// returns bankrupt; the ledger overlays the bankruptcy check on top.
func (b HealthBands) Classify(netWorth, initialCapital float64) Health {
	ratio := netWorth / initialCapital
	switch {
	case ratio >= b.Excellent:
		return HealthExcellent
	case ratio >= b.Good:
		return HealthGood
	case ratio >= b.Acceptable:
		return HealthAcceptable
	default:
		return HealthCritical
	}
}
